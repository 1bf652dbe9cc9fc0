package controllers

import (
	"strconv"

	"clothing-store/middleware"
	"clothing-store/models"
	"clothing-store/services"
	"clothing-store/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultPerCategory = 4
	defaultArrivals    = 8
	maxListLimit       = 100
)

type ProductController struct {
	catalog *services.CatalogService
	log     logrus.FieldLogger
}

func NewProductController(catalog *services.CatalogService, log logrus.FieldLogger) *ProductController {
	return &ProductController{catalog: catalog, log: log}
}

// @Summary List products
// @Description Paginated list without the image gallery.
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.PaginationResponse
// @Router /api/products [get]
func (ctrl *ProductController) List(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 12, maxListLimit)

	result, err := ctrl.catalog.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondPage(c, "Products retrieved", result.Products, result.Meta)
}

// @Summary Products grouped by category
// @Tags Products
// @Produce json
// @Param perCategory query int false "Products per category" default(4)
// @Success 200 {object} models.Response{data=[]models.CategoryGallery}
// @Router /api/products/gallery-products [get]
func (ctrl *ProductController) Gallery(c *gin.Context) {
	perCategory := queryInt(c, "perCategory", queryInt(c, "limit", defaultPerCategory))

	galleries, err := ctrl.catalog.GalleryByCategory(c.Request.Context(), perCategory)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Gallery retrieved", galleries)
}

// @Summary New arrivals
// @Tags Products
// @Produce json
// @Param limit query int false "Number of products" default(8)
// @Success 200 {object} models.Response{data=[]models.ProductSummary}
// @Router /api/products/new-arrivals [get]
func (ctrl *ProductController) NewArrivals(c *gin.Context) {
	products, err := ctrl.catalog.NewArrivals(c.Request.Context(), queryInt(c, "limit", defaultArrivals))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "New arrivals retrieved", products)
}

// @Summary New arrivals, paginated
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(12)
// @Success 200 {object} models.PaginationResponse
// @Router /api/products/new-arrivalsPage [get]
func (ctrl *ProductController) NewArrivalsPage(c *gin.Context) {
	page, limit := utils.ParsePagination(c, 12, maxListLimit)

	result, err := ctrl.catalog.NewArrivalsPage(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondPage(c, "New arrivals retrieved", result.Products, result.Meta)
}

// @Summary Categories
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response{data=[]string}
// @Router /api/products/categories [get]
func (ctrl *ProductController) Categories(c *gin.Context) {
	categories, err := ctrl.catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Categories retrieved", categories)
}

// @Summary Product detail
// @Tags Products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) Detail(c *gin.Context) {
	ctrl.detail(c, c.Param("id"))
}

// @Summary Product detail by query
// @Tags Products
// @Produce json
// @Param id query string true "Product id"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/productsDetail [get]
func (ctrl *ProductController) DetailByQuery(c *gin.Context) {
	ctrl.detail(c, c.Query("id"))
}

func (ctrl *ProductController) detail(c *gin.Context, productID string) {
	product, err := ctrl.catalog.Detail(c.Request.Context(), productID)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Product retrieved", product)
}

// @Summary Add a review
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param request body models.ReviewRequest true "Review"
// @Success 201 {object} models.Response{data=models.Product}
// @Router /api/products/{id}/reviews [post]
func (ctrl *ProductController) AddReview(c *gin.Context) {
	var req models.ReviewRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	product, err := ctrl.catalog.AddReview(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondCreated(c, "Review added", product)
}

// @Summary Create product
// @Tags Products
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body models.ProductRequest true "Product"
// @Success 201 {object} models.Response{data=models.Product}
// @Router /api/products [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	product, err := ctrl.catalog.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondCreated(c, "Product created", product)
}

// @Summary Update product
// @Tags Products
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param request body models.ProductRequest true "Product"
// @Success 200 {object} models.Response{data=models.Product}
// @Router /api/products/{id} [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	var req models.ProductRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	product, err := ctrl.catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Product updated", product)
}

// @Summary Delete product
// @Tags Products
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} models.Response
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	if err := ctrl.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Product deleted", nil)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
