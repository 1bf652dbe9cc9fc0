package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"clothing-store/models"
	"clothing-store/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderDetails(email string) models.OrderDetails {
	return models.OrderDetails{
		Items: []models.OrderItem{{ProductID: "p1", Name: "Linen Shirt", Price: 1299, Qty: 1, Size: "M"}},
		ShippingAddress: models.ShippingAddress{
			FullName: "Jane",
			Email:    email,
			Phone:    "9999999999",
			Address:  "12 MG Road",
			City:     "Pune",
			State:    "MH",
			Pincode:  "411001",
		},
		TotalAmount: 1299,
	}
}

type orderFixture struct {
	store     *memory.Store
	gateway   *fakeGateway
	sender    *recordingSender
	publisher *fakePublisher
	svc       *OrderService
}

func newOrderFixture(opts OrderOptions) *orderFixture {
	f := &orderFixture{
		store:     memory.New(),
		gateway:   &fakeGateway{validSignature: true},
		sender:    &recordingSender{},
		publisher: &fakePublisher{},
	}
	f.svc = NewOrderService(f.store, f.gateway, f.sender, testTemplates, f.publisher, opts, nullLogger())
	return f
}

func TestCreateGatewayOrderConvertsToMinorUnits(t *testing.T) {
	f := newOrderFixture(OrderOptions{})

	order, err := f.svc.CreateGatewayOrder(context.Background(), models.CreateGatewayOrderRequest{Amount: 1299.99})
	require.NoError(t, err)
	assert.EqualValues(t, 129999, f.gateway.lastAmount)
	assert.Equal(t, "INR", f.gateway.lastCurrency)
	assert.True(t, strings.HasPrefix(order.Receipt, "rcpt_"))

	_, err = f.svc.CreateGatewayOrder(context.Background(), models.CreateGatewayOrderRequest{Amount: 0})
	requireKind(t, err, models.KindValidation)

	f.gateway.err = errors.New("connection refused")
	_, err = f.svc.CreateGatewayOrder(context.Background(), models.CreateGatewayOrderRequest{Amount: 10})
	requireKind(t, err, models.KindUpstream)
}

func TestVerifyAndPersistSignatureMismatchWritesNothing(t *testing.T) {
	f := newOrderFixture(OrderOptions{})
	f.gateway.validSignature = false

	_, err := f.svc.VerifyAndPersist(context.Background(), models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "bad",
		OrderDetails:      orderDetails("jane@example.com"),
	})
	requireKind(t, err, models.KindPaymentVerification)

	orders, err := f.store.ListOrdersByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.sender.kinds())
}

func TestVerifyAndPersistStoresCompletedOrder(t *testing.T) {
	f := newOrderFixture(OrderOptions{AdminEmail: "admin@example.com", OrderTopic: "orders.placed"})

	req := models.VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "ok",
		OrderDetails:      orderDetails("Jane@Example.com"),
	}
	order, err := f.svc.VerifyAndPersist(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, models.PaymentMethodOnline, order.PaymentMethod)
	assert.Equal(t, "pay_1", order.PaymentID)
	assert.Equal(t, "jane@example.com", order.Email)

	assert.Equal(t, []string{NotifyOrderConfirmation, NotifyOrderConfirmation}, f.sender.kinds())
	admin := f.sender.last()
	assert.Equal(t, []string{"admin@example.com"}, admin.To)
	assert.True(t, strings.HasPrefix(admin.Subject, "[Admin] "))
	assert.Equal(t, []string{"orders.placed"}, f.publisher.topics)

	_, err = f.svc.VerifyAndPersist(context.Background(), req)
	requireKind(t, err, models.KindConflict)
}

func TestCreateCODOrder(t *testing.T) {
	f := newOrderFixture(OrderOptions{})
	fixed := time.UnixMilli(1700000000000)
	f.svc.now = func() time.Time { return fixed }

	first, err := f.svc.CreateCODOrder(context.Background(), orderDetails("jane@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "cod_1700000000000", first.RazorpayOrderID)
	assert.Equal(t, models.OrderStatusPending, first.Status)
	assert.Equal(t, models.PaymentMethodCOD, first.PaymentMethod)
	assert.Empty(t, f.publisher.topics)

	second, err := f.svc.CreateCODOrder(context.Background(), orderDetails("jane@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "cod_1700000000001", second.RazorpayOrderID)

	bad := orderDetails("jane@example.com")
	bad.Items = nil
	_, err = f.svc.CreateCODOrder(context.Background(), bad)
	requireKind(t, err, models.KindValidation)
}

func TestFirstOrderStatusAndPromo(t *testing.T) {
	f := newOrderFixture(OrderOptions{PromoCode: "WELCOME10", PromoPercent: 10})
	ctx := context.Background()

	status, err := f.svc.FirstOrderStatus(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, status.IsFirstOrder)

	promo, err := f.svc.ValidatePromo(ctx, "jane@example.com", models.ValidatePromoRequest{Code: " welcome10 ", Subtotal: 1999})
	require.NoError(t, err)
	assert.True(t, promo.Valid)
	assert.Equal(t, "WELCOME10", promo.Code)
	assert.Equal(t, 200.0, promo.Discount)

	promo, err = f.svc.ValidatePromo(ctx, "jane@example.com", models.ValidatePromoRequest{Code: "SAVE50", Subtotal: 1999})
	require.NoError(t, err)
	assert.False(t, promo.Valid)
	assert.Equal(t, "Invalid promo code", promo.Message)

	_, err = f.svc.CreateCODOrder(ctx, orderDetails("jane@example.com"))
	require.NoError(t, err)

	status, err = f.svc.FirstOrderStatus(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.False(t, status.IsFirstOrder)
	assert.Equal(t, 1, status.OrderCount)

	promo, err = f.svc.ValidatePromo(ctx, "jane@example.com", models.ValidatePromoRequest{Code: "WELCOME10", Subtotal: 1999})
	require.NoError(t, err)
	assert.False(t, promo.Valid)
	assert.Equal(t, "This promo code is only valid on your first order", promo.Message)
}

func TestOrderListings(t *testing.T) {
	f := newOrderFixture(OrderOptions{})
	ctx := context.Background()

	for _, email := range []string{"jane@example.com", "bob@example.com", "jane@example.com"} {
		_, err := f.svc.CreateCODOrder(ctx, orderDetails(email))
		require.NoError(t, err)
	}

	mine, err := f.svc.OrdersByEmail(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = f.svc.OrdersByEmail(ctx, "")
	requireKind(t, err, models.KindValidation)

	page, err := f.svc.AllOrders(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 2)
	assert.Equal(t, 3, page.Meta.TotalItems)
	assert.Equal(t, 2, page.Meta.TotalPages)
}
