package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "COD"
)

type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId" binding:"required"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price" binding:"gte=0"`
	Qty       int     `json:"qty" bson:"qty" binding:"required,gte=1"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	Color     string  `json:"color,omitempty" bson:"color,omitempty"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

type ShippingAddress struct {
	FullName string `json:"fullName" bson:"fullName"`
	Email    string `json:"email" bson:"email" binding:"required,email"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	Pincode  string `json:"pincode" bson:"pincode"`
	Country  string `json:"country,omitempty" bson:"country,omitempty"`
}

// Order is an immutable snapshot of a purchase. Items carry the name and
// price at the time of purchase, not a reference to the live product.
type Order struct {
	ID              string          `json:"_id,omitempty" bson:"_id,omitempty"`
	RazorpayOrderID string          `json:"razorpayOrderId" bson:"razorpayOrderId"`
	PaymentID       string          `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	Status          OrderStatus     `json:"status" bson:"status"`
	Items           []OrderItem     `json:"items" bson:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	Email           string          `json:"email" bson:"email"`
	TotalAmount     float64         `json:"totalAmount" bson:"totalAmount"`
	PromoCode       string          `json:"promoCode,omitempty" bson:"promoCode,omitempty"`
	DiscountAmount  float64         `json:"discountAmount,omitempty" bson:"discountAmount,omitempty"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
}

// GatewayOrder is what the payment gateway hands back when an order is
// pre-created server side.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type PromoResult struct {
	Valid    bool    `json:"valid"`
	Code     string  `json:"code,omitempty"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

// OrderPlacedEvent is published once an order is persisted.
type OrderPlacedEvent struct {
	OrderID         string      `json:"orderId"`
	RazorpayOrderID string      `json:"razorpayOrderId"`
	Email           string      `json:"email"`
	TotalAmount     float64     `json:"totalAmount"`
	PaymentMethod   string      `json:"paymentMethod"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
}

type FirstOrderStatus struct {
	IsFirstOrder bool `json:"isFirstOrder"`
	OrderCount   int  `json:"orderCount"`
}

type OrderPage struct {
	Orders []Order        `json:"orders"`
	Meta   PaginationMeta `json:"meta"`
}
