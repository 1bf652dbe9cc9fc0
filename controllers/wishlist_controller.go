package controllers

import (
	"clothing-store/middleware"
	"clothing-store/models"
	"clothing-store/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type WishlistController struct {
	wishlists *services.WishlistService
	log       logrus.FieldLogger
}

func NewWishlistController(wishlists *services.WishlistService, log logrus.FieldLogger) *WishlistController {
	return &WishlistController{wishlists: wishlists, log: log}
}

// @Summary List wishlist products
// @Tags Wishlist
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Product}
// @Router /api/wishlist [get]
func (ctrl *WishlistController) List(c *gin.Context) {
	products, err := ctrl.wishlists.ListProducts(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Wishlist retrieved", products)
}

// @Summary Wishlist membership
// @Tags Wishlist
// @Security BearerAuth
// @Produce json
// @Param productId path string true "Product id"
// @Success 200 {object} models.Response
// @Router /api/wishlist/{productId} [get]
func (ctrl *WishlistController) Status(c *gin.Context) {
	in, err := ctrl.wishlists.Status(c.Request.Context(), middleware.GetUserID(c), c.Param("productId"))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Wishlist status", gin.H{"inWishlist": in})
}

// @Summary Toggle wishlist membership
// @Tags Wishlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.WishlistToggleRequest true "Product"
// @Success 200 {object} models.Response
// @Router /api/wishlist/toggle [post]
func (ctrl *WishlistController) Toggle(c *gin.Context) {
	var req models.WishlistToggleRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	in, err := ctrl.wishlists.Toggle(c.Request.Context(), middleware.GetUserID(c), req.ProductID)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	message := "Removed from wishlist"
	if in {
		message = "Added to wishlist"
	}
	respondOK(c, message, gin.H{"inWishlist": in, "productId": req.ProductID})
}
