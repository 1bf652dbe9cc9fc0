package libs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPaymentSignature(t *testing.T) {
	sig := SignPayment("key_secret", "order_1", "pay_1")

	assert.True(t, VerifyPaymentSignature("key_secret", "order_1", "pay_1", sig))
	assert.False(t, VerifyPaymentSignature("key_secret", "order_1", "pay_2", sig))
	assert.False(t, VerifyPaymentSignature("other_secret", "order_1", "pay_1", sig))
	assert.False(t, VerifyPaymentSignature("key_secret", "order_1", "pay_1", ""))
	assert.False(t, VerifyPaymentSignature("", "order_1", "pay_1", sig))
}

func TestRazorpayGatewayVerifySignature(t *testing.T) {
	g := NewRazorpayGateway("rzp_test", "key_secret")

	assert.True(t, g.VerifySignature("order_9", "pay_9", SignPayment("key_secret", "order_9", "pay_9")))
	assert.False(t, g.VerifySignature("order_9", "pay_9", "deadbeef"))
}
