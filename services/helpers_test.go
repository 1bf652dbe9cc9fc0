package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clothing-store/libs"
	"clothing-store/models"
	"clothing-store/repositories/memory"
	"clothing-store/utils"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func nullLogger() logrus.FieldLogger {
	log, _ := logtest.NewNullLogger()
	return log
}

var testTemplates = libs.MailTemplates{StoreName: "Threads", FrontendURL: "https://shop.example.com"}

// recordingSender captures queued notifications instead of sending them.
type recordingSender struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (r *recordingSender) Enqueue(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingSender) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Kind)
	}
	return out
}

func (r *recordingSender) last() models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[len(r.sent)-1]
}

type fakeMailer struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (m *fakeMailer) Send(context.Context, []string, string, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return errors.New("smtp down")
	}
	return nil
}

func (m *fakeMailer) setFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

type fakeGateway struct {
	validSignature bool
	err            error
	lastAmount     int64
	lastCurrency   string
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*models.GatewayOrder, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastAmount = amountMinor
	g.lastCurrency = currency
	return &models.GatewayOrder{ID: "order_test", Amount: amountMinor, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (g *fakeGateway) VerifySignature(string, string, string) bool {
	return g.validSignature
}

type fakePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *fakePublisher) Publish(_ context.Context, topic, _ string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *fakePublisher) Close() {}

func newTestAuth(store *memory.Store, sender NotificationSender) *AuthService {
	hasher := utils.NewPasswordHasher(utils.HasherBcrypt, 4)
	tokens := utils.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	return NewAuthService(store, hasher, tokens, sender, testTemplates, nullLogger())
}

func seedProduct(t *testing.T, store *memory.Store, id string, price float64) {
	t.Helper()
	require.NoError(t, store.CreateProduct(context.Background(), &models.Product{
		ProductID: id,
		Name:      "Product " + id,
		Price:     price,
		Category:  "tops",
		Colors:    []string{"black"},
		InStock:   true,
	}))
}

func seedCustomer(t *testing.T, store *memory.Store, email string) *models.User {
	t.Helper()
	user := &models.User{UserID: "u-" + email, Name: "Jane", Email: email, Phone: "999"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func requireKind(t *testing.T, err error, kind models.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, models.KindOf(err), err.Error())
}
