package models

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone" binding:"omitempty,max=20"`
	Avatar *string `json:"avatar" binding:"omitempty,max=2048"`
}

type AuthResponse struct {
	AccessToken string     `json:"accessToken"`
	User        PublicUser `json:"user"`
}

type CartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CartLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartLine is a cart entry joined with its product.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
}

type CartView struct {
	Items    []CartLine `json:"items"`
	Count    int        `json:"count"`
	Subtotal float64    `json:"subtotal"`
}

type WishlistToggleRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ProductRequest struct {
	ProductID    string   `json:"id" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Price        float64  `json:"price" binding:"gte=0"`
	MarketPrice  float64  `json:"marketPrice" binding:"gte=0"`
	Category     string   `json:"category"`
	Image        string   `json:"image"`
	Images       []string `json:"images"`
	Sizes        []string `json:"sizes"`
	Colors       []string `json:"colors" binding:"required,min=1,dive,required"`
	InStock      *bool    `json:"inStock"`
	Description  string   `json:"description"`
	IsNewArrival bool     `json:"isNewArrival"`
}

type BannerRequest struct {
	Image    string `json:"image" binding:"required"`
	IsActive *bool  `json:"isActive"`
	Order    int    `json:"order"`
}

type AnnouncementRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

type CreateGatewayOrderRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"omitempty,len=3"`
	Receipt  string  `json:"receipt" binding:"omitempty,max=40"`
}

type OrderDetails struct {
	Items           []OrderItem     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shippingAddress" binding:"required"`
	TotalAmount     float64         `json:"totalAmount" binding:"required,gt=0"`
	PromoCode       string          `json:"promoCode"`
	DiscountAmount  float64         `json:"discountAmount" binding:"gte=0"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string       `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string       `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string       `json:"razorpay_signature" binding:"required"`
	OrderDetails      OrderDetails `json:"orderDetails" binding:"required"`
}

type ValidatePromoRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"gte=0"`
}
