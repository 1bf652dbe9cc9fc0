package controllers

import (
	"strings"

	"clothing-store/middleware"
	"clothing-store/models"
	"clothing-store/services"
	"clothing-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PaymentController struct {
	orders   *services.OrderService
	adminKey string
	keyID    string
	log      logrus.FieldLogger
}

func NewPaymentController(orders *services.OrderService, adminKey, keyID string, log logrus.FieldLogger) *PaymentController {
	return &PaymentController{orders: orders, adminKey: adminKey, keyID: keyID, log: log}
}

// @Summary Create a gateway order
// @Description Amount is in major units; the gateway receives minor units.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body models.CreateGatewayOrderRequest true "Amount"
// @Success 200 {object} models.Response{data=models.GatewayOrder}
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /api/payment/create-order [post]
func (ctrl *PaymentController) CreateOrder(c *gin.Context) {
	var req models.CreateGatewayOrderRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	order, err := ctrl.orders.CreateGatewayOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Order created", gin.H{
		"id":       order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  order.Receipt,
		"status":   order.Status,
		"keyId":    ctrl.keyID,
	})
}

// @Summary Verify payment and store the order
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body models.VerifyPaymentRequest true "Gateway callback and order"
// @Success 201 {object} models.Response{data=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Router /api/payment/verify-payment [post]
func (ctrl *PaymentController) VerifyPayment(c *gin.Context) {
	var req models.VerifyPaymentRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	order, err := ctrl.orders.VerifyAndPersist(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondCreated(c, "Payment verified", gin.H{"orderId": order.RazorpayOrderID, "order": order})
}

// @Summary Place a cash-on-delivery order
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body models.OrderDetails true "Order"
// @Success 201 {object} models.Response{data=models.Order}
// @Router /api/payment/create-cod-order [post]
func (ctrl *PaymentController) CreateCODOrder(c *gin.Context) {
	var req models.OrderDetails
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	order, err := ctrl.orders.CreateCODOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondCreated(c, "Order placed", gin.H{"orderId": order.RazorpayOrderID, "order": order})
}

// @Summary Orders by email
// @Description Requires the admin key, or a bearer token for the same email.
// @Tags Payment
// @Security BearerAuth
// @Security ApiKeyAuth
// @Produce json
// @Param email query string true "Customer email"
// @Success 200 {object} models.Response{data=[]models.Order}
// @Router /api/payment/orders [get]
func (ctrl *PaymentController) OrdersByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		email = middleware.GetUserEmail(c)
	}

	if !middleware.HasAdminKey(c, ctrl.adminKey) {
		tokenEmail := middleware.GetUserEmail(c)
		if tokenEmail == "" {
			respondError(c, ctrl.log, models.ErrAuth("Authorization header required"))
			return
		}
		if !strings.EqualFold(tokenEmail, email) {
			respondError(c, ctrl.log, models.ErrForbidden("You can only view your own orders"))
			return
		}
	}

	orders, err := ctrl.orders.OrdersByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Orders retrieved", orders)
}

// @Summary All orders
// @Tags Payment
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.PaginationResponse
// @Router /api/payment/all-orders [get]
func (ctrl *PaymentController) AllOrders(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 20, maxListLimit)

	result, err := ctrl.orders.AllOrders(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondPage(c, "Orders retrieved", result.Orders, result.Meta)
}

// @Summary First order status
// @Tags Payment
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.FirstOrderStatus}
// @Router /api/payment/first-order-status [get]
func (ctrl *PaymentController) FirstOrderStatus(c *gin.Context) {
	status, err := ctrl.orders.FirstOrderStatus(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "First order status", status)
}

// @Summary Validate promo code
// @Tags Payment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ValidatePromoRequest true "Promo code and subtotal"
// @Success 200 {object} models.Response{data=models.PromoResult}
// @Router /api/payment/validate-promo [post]
func (ctrl *PaymentController) ValidatePromo(c *gin.Context) {
	var req models.ValidatePromoRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	result, err := ctrl.orders.ValidatePromo(c.Request.Context(), middleware.GetUserEmail(c), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, result.Message, result)
}
