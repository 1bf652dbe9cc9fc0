package controllers

import (
	"clothing-store/middleware"
	"clothing-store/models"
	"clothing-store/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CartController struct {
	carts *services.CartService
	log   logrus.FieldLogger
}

func NewCartController(carts *services.CartService, log logrus.FieldLogger) *CartController {
	return &CartController{carts: carts, log: log}
}

// @Summary Get cart
// @Description Lines whose product no longer exists are omitted.
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, err := ctrl.carts.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Cart retrieved", cart)
}

// @Summary Add or update a cart line
// @Description Sets the quantity of the (productId, size, color) line, adding it when missing.
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CartItemRequest true "Cart line"
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /api/cart/add [post]
func (ctrl *CartController) Add(c *gin.Context) {
	var req models.CartItemRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	cart, err := ctrl.carts.AddOrUpdate(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Cart updated", cart)
}

// @Summary Update line quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CartItemRequest true "Cart line and new quantity"
// @Success 200 {object} models.Response{data=models.CartView}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cart/update-quantity [post]
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	var req models.CartItemRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	cart, err := ctrl.carts.UpdateQuantity(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Quantity updated", cart)
}

// @Summary Remove a cart line
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CartLineRequest true "Cart line"
// @Success 200 {object} models.Response{data=models.CartView}
// @Router /api/cart/remove [post]
func (ctrl *CartController) Remove(c *gin.Context) {
	var req models.CartLineRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	cart, err := ctrl.carts.Remove(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Item removed", cart)
}

// @Summary Clear cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/cart/clear [post]
func (ctrl *CartController) Clear(c *gin.Context) {
	if err := ctrl.carts.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Cart cleared", models.CartView{Items: []models.CartLine{}})
}
