package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"clothing-store/models"
	"clothing-store/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func welcomeMail() models.Notification {
	return models.Notification{Kind: NotifyWelcome, To: []string{"jane@example.com"}, Subject: "hi", Body: "<p>hi</p>"}
}

func TestNotifierDeliversQueuedMail(t *testing.T) {
	store := memory.New()
	mailer := &fakeMailer{}
	n := NewNotifier(mailer, store, nullLogger(), NotifierOptions{Workers: 2})
	require.NoError(t, n.Start())

	n.Enqueue(welcomeMail())
	n.Enqueue(welcomeMail())
	require.NoError(t, n.Close(context.Background()))

	assert.Equal(t, 2, mailer.calls)
	failed, err := store.ListFailedNotifications(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestNotifierDeadLettersAndReplays(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	mailer := &fakeMailer{fail: true}
	n := NewNotifier(mailer, store, nullLogger(), NotifierOptions{MaxAttempts: 3})
	require.NoError(t, n.Start())

	n.Enqueue(welcomeMail())
	require.NoError(t, n.Close(ctx))

	failed, err := store.ListFailedNotifications(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 1, failed[0].Attempts)
	assert.Equal(t, "smtp down", failed[0].LastError)

	delivered, err := n.ReplayFailed(ctx)
	require.NoError(t, err)
	assert.Zero(t, delivered)
	failed, err = store.ListFailedNotifications(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].Attempts)

	mailer.setFail(false)
	delivered, err = n.ReplayFailed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
	failed, err = store.ListFailedNotifications(ctx, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestNotifierStopsRetryingAtMaxAttempts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	n := NewNotifier(&fakeMailer{fail: true}, store, nullLogger(), NotifierOptions{MaxAttempts: 2})

	msg := welcomeMail()
	msg.Attempts = 1
	require.NoError(t, store.SaveFailedNotification(ctx, &msg))

	_, err := n.ReplayFailed(ctx)
	require.NoError(t, err)
	delivered, err := n.ReplayFailed(ctx)
	require.NoError(t, err)
	assert.Zero(t, delivered)

	failed, err := store.ListFailedNotifications(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, failed)
}

func TestNotifierEnqueueAfterCloseDeadLetters(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	n := NewNotifier(&fakeMailer{}, store, nullLogger(), NotifierOptions{})
	require.NoError(t, n.Start())
	require.NoError(t, n.Close(ctx))

	n.Enqueue(welcomeMail())

	failed, err := store.ListFailedNotifications(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "notification queue unavailable", failed[0].LastError)
	assert.Zero(t, failed[0].Attempts)
}

func TestNotifierRejectsBadSchedule(t *testing.T) {
	n := NewNotifier(&fakeMailer{}, memory.New(), nullLogger(), NotifierOptions{RetrySchedule: "not a schedule"})
	assert.Error(t, n.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, n.Close(ctx))
}

type blockingMailer struct {
	started chan struct{}
	once    sync.Once
}

func (m *blockingMailer) Send(ctx context.Context, _ []string, _, _ string) error {
	m.once.Do(func() { close(m.started) })
	<-ctx.Done()
	return ctx.Err()
}

func TestNotifierCloseCancelsReplayInFlight(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	msg := welcomeMail()
	require.NoError(t, store.SaveFailedNotification(ctx, &msg))

	mailer := &blockingMailer{started: make(chan struct{})}
	n := NewNotifier(mailer, store, nullLogger(), NotifierOptions{RetrySchedule: "@every 1s"})
	require.NoError(t, n.Start())

	select {
	case <-mailer.started:
	case <-time.After(5 * time.Second):
		t.Fatal("replay job never ran")
	}

	closeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	start := time.Now()
	require.NoError(t, n.Close(closeCtx))
	assert.Less(t, time.Since(start), 2*time.Second)
}
