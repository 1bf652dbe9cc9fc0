package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"clothing-store/libs"
	"clothing-store/metrics"
	"clothing-store/models"
	"clothing-store/repositories"

	"github.com/sirupsen/logrus"
)

const (
	defaultCurrency = "INR"
	publishTimeout  = 5 * time.Second
	codIDAttempts   = 3
)

type OrderOptions struct {
	AdminEmail   string
	PromoCode    string
	PromoPercent float64
	OrderTopic   string
}

type OrderService struct {
	orders    repositories.OrderRepository
	gateway   libs.PaymentGateway
	notifier  NotificationSender
	templates libs.MailTemplates
	events    libs.EventPublisher
	opts      OrderOptions
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewOrderService(orders repositories.OrderRepository, gateway libs.PaymentGateway, notifier NotificationSender,
	templates libs.MailTemplates, events libs.EventPublisher, opts OrderOptions, log logrus.FieldLogger) *OrderService {
	if events == nil {
		events = libs.NoopPublisher{}
	}
	return &OrderService{
		orders:    orders,
		gateway:   gateway,
		notifier:  notifier,
		templates: templates,
		events:    events,
		opts:      opts,
		log:       log.WithField("service", "order"),
		now:       time.Now,
	}
}

// CreateGatewayOrder pre-creates the payment on the gateway. Amount is in
// major units and is sent in minor units.
func (s *OrderService) CreateGatewayOrder(ctx context.Context, req models.CreateGatewayOrderRequest) (*models.GatewayOrder, error) {
	if req.Amount <= 0 {
		return nil, models.ErrValidation("Invalid amount", models.FieldError{Field: "amount", Message: "amount must be greater than 0"})
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	receipt := strings.TrimSpace(req.Receipt)
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d", s.now().UnixMilli())
	}

	order, err := s.gateway.CreateOrder(ctx, int64(math.Round(req.Amount*100)), currency, receipt)
	if err != nil {
		return nil, models.ErrUpstream("Payment gateway unavailable", err)
	}
	return order, nil
}

// VerifyAndPersist stores the order only after the gateway signature checks
// out. A mismatch writes nothing.
func (s *OrderService) VerifyAndPersist(ctx context.Context, req models.VerifyPaymentRequest) (*models.Order, error) {
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		metrics.SignatureMismatch()
		s.log.WithField("razorpay_order_id", req.RazorpayOrderID).Warn("Payment signature mismatch")
		return nil, models.ErrPaymentVerification("Payment verification failed")
	}
	if err := validateOrderDetails(req.OrderDetails); err != nil {
		return nil, err
	}

	order := s.buildOrder(req.OrderDetails, models.PaymentMethodOnline, models.OrderStatusCompleted)
	order.RazorpayOrderID = req.RazorpayOrderID
	order.PaymentID = req.RazorpayPaymentID

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, models.ErrConflict("Order already recorded")
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.afterPlaced(ctx, order)
	return order, nil
}

// CreateCODOrder stores a pending cash-on-delivery order under a synthetic
// cod_<unix millis> id.
func (s *OrderService) CreateCODOrder(ctx context.Context, details models.OrderDetails) (*models.Order, error) {
	if err := validateOrderDetails(details); err != nil {
		return nil, err
	}

	order := s.buildOrder(details, models.PaymentMethodCOD, models.OrderStatusPending)
	stamp := s.now().UnixMilli()
	for attempt := 0; ; attempt++ {
		order.RazorpayOrderID = fmt.Sprintf("cod_%d", stamp+int64(attempt))
		err := s.orders.CreateOrder(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrDuplicateKey) || attempt+1 >= codIDAttempts {
			return nil, fmt.Errorf("create cod order: %w", err)
		}
	}
	s.afterPlaced(ctx, order)
	return order, nil
}

func (s *OrderService) OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, models.ErrValidation("Email is required", models.FieldError{Field: "email", Message: "email is required"})
	}
	orders, err := s.orders.ListOrdersByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) AllOrders(ctx context.Context, page, limit int) (*models.OrderPage, error) {
	page, limit = repositories.Normalize(page, limit, maxPageSize)
	orders, total, err := s.orders.ListOrders(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return &models.OrderPage{Orders: orders, Meta: models.NewPaginationMeta(page, limit, total)}, nil
}

// FirstOrderStatus counts placed orders, ignoring cancelled and failed ones.
func (s *OrderService) FirstOrderStatus(ctx context.Context, email string) (*models.FirstOrderStatus, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, models.ErrValidation("Email is required")
	}
	count, err := s.orders.CountPlacedOrders(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	return &models.FirstOrderStatus{IsFirstOrder: count == 0, OrderCount: count}, nil
}

// ValidatePromo accepts only the configured code and only for a customer with
// no placed orders.
func (s *OrderService) ValidatePromo(ctx context.Context, email string, req models.ValidatePromoRequest) (*models.PromoResult, error) {
	code := strings.TrimSpace(req.Code)
	if s.opts.PromoCode == "" || !strings.EqualFold(code, s.opts.PromoCode) {
		return &models.PromoResult{Valid: false, Message: "Invalid promo code"}, nil
	}

	status, err := s.FirstOrderStatus(ctx, email)
	if err != nil {
		return nil, err
	}
	if !status.IsFirstOrder {
		return &models.PromoResult{Valid: false, Message: "This promo code is only valid on your first order"}, nil
	}

	discount := math.Round(req.Subtotal * s.opts.PromoPercent / 100)
	return &models.PromoResult{
		Valid:    true,
		Code:     strings.ToUpper(s.opts.PromoCode),
		Discount: discount,
		Message:  fmt.Sprintf("%g%% discount applied", s.opts.PromoPercent),
	}, nil
}

func (s *OrderService) buildOrder(details models.OrderDetails, method string, status models.OrderStatus) *models.Order {
	address := details.ShippingAddress
	address.Email = normalizeEmail(address.Email)
	return &models.Order{
		Status:          status,
		Items:           append([]models.OrderItem{}, details.Items...),
		ShippingAddress: address,
		Email:           address.Email,
		TotalAmount:     details.TotalAmount,
		PromoCode:       strings.ToUpper(strings.TrimSpace(details.PromoCode)),
		DiscountAmount:  details.DiscountAmount,
		PaymentMethod:   method,
		CreatedAt:       s.now().UTC(),
	}
}

// afterPlaced runs the best-effort side effects of a stored order. None of
// them can fail the request.
func (s *OrderService) afterPlaced(ctx context.Context, order *models.Order) {
	metrics.OrderPlaced(order.PaymentMethod)

	subject, body := s.templates.OrderConfirmation(order)
	s.notifier.Enqueue(models.Notification{Kind: NotifyOrderConfirmation, To: []string{order.Email}, Subject: subject, Body: body})
	if s.opts.AdminEmail != "" && !strings.EqualFold(s.opts.AdminEmail, order.Email) {
		s.notifier.Enqueue(models.Notification{
			Kind:    NotifyOrderConfirmation,
			To:      []string{s.opts.AdminEmail},
			Subject: "[Admin] " + subject,
			Body:    body,
		})
	}

	if s.opts.OrderTopic == "" {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	event := models.OrderPlacedEvent{
		OrderID:         order.ID,
		RazorpayOrderID: order.RazorpayOrderID,
		Email:           order.Email,
		TotalAmount:     order.TotalAmount,
		PaymentMethod:   order.PaymentMethod,
		Status:          order.Status,
		Items:           order.Items,
		CreatedAt:       order.CreatedAt,
	}
	if err := s.events.Publish(pubCtx, s.opts.OrderTopic, order.RazorpayOrderID, event); err != nil {
		s.log.WithError(err).WithField("order_id", order.RazorpayOrderID).Warn("Publishing order event failed")
	}
}

func validateOrderDetails(details models.OrderDetails) error {
	var fields []models.FieldError
	if len(details.Items) == 0 {
		fields = append(fields, models.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for i, item := range details.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			fields = append(fields, models.FieldError{Field: fmt.Sprintf("items[%d].productId", i), Message: "productId is required"})
		}
		if item.Qty < 1 {
			fields = append(fields, models.FieldError{Field: fmt.Sprintf("items[%d].qty", i), Message: "qty must be at least 1"})
		}
	}
	if details.TotalAmount <= 0 {
		fields = append(fields, models.FieldError{Field: "totalAmount", Message: "totalAmount must be greater than 0"})
	}
	if strings.TrimSpace(details.ShippingAddress.Email) == "" {
		fields = append(fields, models.FieldError{Field: "shippingAddress.email", Message: "email is required"})
	}
	if len(fields) > 0 {
		return models.ErrValidation("Invalid order details", fields...)
	}
	return nil
}
