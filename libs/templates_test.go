package libs

import (
	"testing"

	"clothing-store/models"

	"github.com/stretchr/testify/assert"
)

func TestTemplatesEscapeUserInput(t *testing.T) {
	tpl := MailTemplates{StoreName: "Threads", FrontendURL: "https://shop.example.com"}

	subject, body := tpl.Welcome("<script>alert(1)</script>")
	assert.Equal(t, "Welcome to Threads", subject)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestPasswordResetLink(t *testing.T) {
	tpl := MailTemplates{StoreName: "Threads", FrontendURL: "https://shop.example.com"}

	_, body := tpl.PasswordReset("Jane", "abc123")
	assert.Contains(t, body, "https://shop.example.com/reset-password/abc123")
}

func TestOrderConfirmation(t *testing.T) {
	tpl := MailTemplates{StoreName: "Threads"}
	order := &models.Order{
		RazorpayOrderID: "cod_1",
		PaymentMethod:   models.PaymentMethodCOD,
		Status:          models.OrderStatusPending,
		TotalAmount:     1499,
		Items:           []models.OrderItem{{ProductID: "p1", Name: "Linen Shirt", Qty: 2, Price: 749.5, Size: "M"}},
		ShippingAddress: models.ShippingAddress{FullName: "Jane", City: "Pune"},
	}

	subject, body := tpl.OrderConfirmation(order)
	assert.Equal(t, "Order confirmed: cod_1", subject)
	assert.Contains(t, body, "Linen Shirt")
	assert.Contains(t, body, "1499.00")
	assert.Contains(t, body, "Pune")
}
