package services

import (
	"context"
	"fmt"
	"sync"

	"clothing-store/libs"
	"clothing-store/metrics"
	"clothing-store/models"
	"clothing-store/repositories"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	NotifyWelcome           = "welcome"
	NotifyLogin             = "login"
	NotifyPasswordReset     = "password_reset"
	NotifyPasswordChanged   = "password_changed"
	NotifyOrderConfirmation = "order_confirmation"
)

const replayBatchSize = 50

// NotificationSender queues a mail for delivery outside the request path.
type NotificationSender interface {
	Enqueue(n models.Notification)
}

type NotifierOptions struct {
	Workers       int
	QueueSize     int
	RatePerSec    float64
	MaxAttempts   int
	RetrySchedule string
}

// Notifier delivers mail on a small worker pool. A failed send is written to
// the dead-letter store and retried by ReplayFailed until MaxAttempts.
type Notifier struct {
	mailer  libs.Mailer
	repo    repositories.NotificationRepository
	log     logrus.FieldLogger
	limiter *rate.Limiter
	opts    NotifierOptions

	mu     sync.RWMutex
	closed bool
	queue  chan models.Notification
	wg     sync.WaitGroup
	cron   *cron.Cron
	stop   context.CancelFunc
	ctx    context.Context
}

func NewNotifier(mailer libs.Mailer, repo repositories.NotificationRepository, log logrus.FieldLogger, opts NotifierOptions) *Notifier {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 64
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 5
	}
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Notifier{
		mailer:  mailer,
		repo:    repo,
		log:     log.WithField("component", "notifier"),
		limiter: rate.NewLimiter(limit, 1),
		opts:    opts,
		queue:   make(chan models.Notification, opts.QueueSize),
		ctx:     ctx,
		stop:    cancel,
	}
}

// Start launches the workers and, when a schedule is configured, the replay
// job.
func (n *Notifier) Start() error {
	for i := 0; i < n.opts.Workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}

	if n.opts.RetrySchedule == "" {
		return nil
	}
	n.cron = cron.New()
	_, err := n.cron.AddFunc(n.opts.RetrySchedule, func() {
		delivered, err := n.ReplayFailed(n.ctx)
		if err != nil {
			n.log.WithError(err).Error("Replaying failed notifications")
			return
		}
		if delivered > 0 {
			n.log.WithField("delivered", delivered).Info("Replayed failed notifications")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid notification retry schedule %q: %w", n.opts.RetrySchedule, err)
	}
	n.cron.Start()
	return nil
}

// Enqueue never blocks. When the queue is full or the notifier is closed the
// message goes straight to the dead-letter store.
func (n *Notifier) Enqueue(msg models.Notification) {
	n.mu.RLock()
	if !n.closed {
		select {
		case n.queue <- msg:
			n.mu.RUnlock()
			return
		default:
		}
	}
	n.mu.RUnlock()

	msg.LastError = "notification queue unavailable"
	n.deadLetter(context.Background(), msg)
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for msg := range n.queue {
		n.deliver(context.Background(), msg)
	}
}

func (n *Notifier) deliver(ctx context.Context, msg models.Notification) {
	if err := n.send(ctx, &msg); err != nil {
		n.log.WithError(err).WithFields(logrus.Fields{"kind": msg.Kind, "to": msg.To}).Warn("Mail delivery failed")
		n.deadLetter(ctx, msg)
	}
}

func (n *Notifier) send(ctx context.Context, msg *models.Notification) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}
	msg.Attempts++
	if err := n.mailer.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
		msg.LastError = err.Error()
		metrics.NotificationResult(msg.Kind, "failed")
		return err
	}
	metrics.NotificationResult(msg.Kind, "sent")
	return nil
}

func (n *Notifier) deadLetter(ctx context.Context, msg models.Notification) {
	if err := n.repo.SaveFailedNotification(ctx, &msg); err != nil {
		n.log.WithError(err).WithField("kind", msg.Kind).Error("Could not store failed notification")
	}
}

// ReplayFailed resends stored failures that have attempts left and returns
// how many went through.
func (n *Notifier) ReplayFailed(ctx context.Context) (int, error) {
	pending, err := n.repo.ListFailedNotifications(ctx, n.opts.MaxAttempts, replayBatchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for i := range pending {
		msg := pending[i]
		if err := n.send(ctx, &msg); err != nil {
			if ctx.Err() != nil {
				return delivered, ctx.Err()
			}
			if saveErr := n.repo.SaveFailedNotification(ctx, &msg); saveErr != nil {
				n.log.WithError(saveErr).Error("Could not update failed notification")
			}
			continue
		}
		delivered++
		if err := n.repo.DeleteFailedNotification(ctx, msg.ID); err != nil {
			n.log.WithError(err).WithField("id", msg.ID).Error("Could not remove delivered notification")
		}
	}
	return delivered, nil
}

// Close cancels any replay in flight, stops the replay job and waits for
// queued mail to drain or ctx to expire.
func (n *Notifier) Close(ctx context.Context) error {
	n.stop()
	if n.cron != nil {
		select {
		case <-n.cron.Stop().Done():
		case <-ctx.Done():
		}
	}

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
