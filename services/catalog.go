package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clothing-store/libs"
	"clothing-store/metrics"
	"clothing-store/models"
	"clothing-store/repositories"

	"github.com/sirupsen/logrus"
)

const (
	catalogCachePrefix = "products:"
	catalogCacheTTL    = 5 * time.Minute
	maxPageSize        = 100
)

type ProductPage struct {
	Products []models.Product      `json:"products"`
	Meta     models.PaginationMeta `json:"meta"`
}

type ArrivalsPage struct {
	Products []models.ProductSummary `json:"products"`
	Meta     models.PaginationMeta   `json:"meta"`
}

type CatalogService struct {
	products repositories.ProductRepository
	users    repositories.UserRepository
	cache    libs.Cache
	log      logrus.FieldLogger
}

func NewCatalogService(products repositories.ProductRepository, users repositories.UserRepository, cache libs.Cache, log logrus.FieldLogger) *CatalogService {
	if cache == nil {
		cache = libs.NoopCache{}
	}
	return &CatalogService{
		products: products,
		users:    users,
		cache:    cache,
		log:      log.WithField("service", "catalog"),
	}
}

// cachedRead serves key from the cache when present and otherwise calls load
// and stores its result. Cache failures only cost a database round trip.
func cachedRead[T any](ctx context.Context, s *CatalogService, key string, load func() (T, error)) (T, error) {
	var cached T
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Cache read failed")
	}
	metrics.CacheLookup(hit)
	if hit {
		return cached, nil
	}

	fresh, err := load()
	if err != nil {
		return fresh, err
	}
	if err := s.cache.Set(ctx, key, fresh, catalogCacheTTL); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
	return fresh, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.cache.DeletePrefix(ctx, catalogCachePrefix); err != nil {
		s.log.WithError(err).Warn("Cache invalidation failed")
	}
}

// GalleryByCategory returns the perCategory most recent products of every
// category.
func (s *CatalogService) GalleryByCategory(ctx context.Context, perCategory int) ([]models.CategoryGallery, error) {
	if perCategory < 1 {
		perCategory = 4
	}
	if perCategory > maxPageSize {
		perCategory = maxPageSize
	}
	key := fmt.Sprintf("%sgallery:%d", catalogCachePrefix, perCategory)
	return cachedRead(ctx, s, key, func() ([]models.CategoryGallery, error) {
		galleries, err := s.products.GalleryByCategory(ctx, perCategory)
		if err != nil {
			return nil, fmt.Errorf("gallery by category: %w", err)
		}
		return galleries, nil
	})
}

func (s *CatalogService) NewArrivals(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	page, err := s.NewArrivalsPage(ctx, 1, limit)
	if err != nil {
		return nil, err
	}
	return page.Products, nil
}

func (s *CatalogService) NewArrivalsPage(ctx context.Context, page, limit int) (*ArrivalsPage, error) {
	page, limit = repositories.Normalize(page, limit, maxPageSize)
	key := fmt.Sprintf("%sarrivals:%d:%d", catalogCachePrefix, page, limit)
	return cachedRead(ctx, s, key, func() (*ArrivalsPage, error) {
		products, total, err := s.products.ListNewArrivals(ctx, page, limit)
		if err != nil {
			return nil, fmt.Errorf("list new arrivals: %w", err)
		}
		return &ArrivalsPage{Products: products, Meta: models.NewPaginationMeta(page, limit, total)}, nil
	})
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return cachedRead(ctx, s, catalogCachePrefix+"categories", func() ([]string, error) {
		categories, err := s.products.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		return categories, nil
	})
}

func (s *CatalogService) List(ctx context.Context, page, limit int) (*ProductPage, error) {
	page, limit = repositories.Normalize(page, limit, maxPageSize)
	key := fmt.Sprintf("%slist:%d:%d", catalogCachePrefix, page, limit)
	return cachedRead(ctx, s, key, func() (*ProductPage, error) {
		products, total, err := s.products.ListProducts(ctx, page, limit)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		return &ProductPage{Products: products, Meta: models.NewPaginationMeta(page, limit, total)}, nil
	})
}

func (s *CatalogService) Detail(ctx context.Context, productID string) (*models.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, models.ErrValidation("Product ID is required")
	}
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFoundOr(err, "Product not found", "get product")
	}
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}
	return product, nil
}

// AddReview appends a review signed with the reviewer's current name and
// avatar.
func (s *CatalogService) AddReview(ctx context.Context, productID, userID string, req models.ReviewRequest) (*models.Product, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, models.ErrValidation("Rating must be between 1 and 5", models.FieldError{Field: "rating", Message: "rating must be between 1 and 5"})
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "lookup reviewer")
	}

	review := models.Review{
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		UserID:     user.UserID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Date:       time.Now().UTC(),
	}
	if err := s.products.AppendReview(ctx, productID, review); err != nil {
		return nil, notFoundOr(err, "Product not found", "append review")
	}
	return s.Detail(ctx, productID)
}

func (s *CatalogService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	product := productFromRequest(req)
	if appErr := product.Validate(); appErr != nil {
		return nil, appErr
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, models.ErrConflict("Product with this id already exists")
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx)
	return product, nil
}

// Update replaces every editable field of the product. Reviews are kept.
func (s *CatalogService) Update(ctx context.Context, productID string, req models.ProductRequest) (*models.Product, error) {
	product := productFromRequest(req)
	if appErr := product.Validate(); appErr != nil {
		return nil, appErr
	}

	if err := s.products.UpdateProduct(ctx, productID, product); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, models.ErrConflict("Product with this id already exists")
		}
		return nil, notFoundOr(err, "Product not found", "update product")
	}
	s.invalidate(ctx)
	return s.Detail(ctx, product.ProductID)
}

func (s *CatalogService) Delete(ctx context.Context, productID string) error {
	if err := s.products.DeleteProduct(ctx, productID); err != nil {
		return notFoundOr(err, "Product not found", "delete product")
	}
	s.invalidate(ctx)
	return nil
}

func productFromRequest(req models.ProductRequest) *models.Product {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	image := strings.TrimSpace(req.Image)
	if image == "" && len(req.Images) > 0 {
		image = req.Images[0]
	}
	sizes := req.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	return &models.Product{
		ProductID:    strings.TrimSpace(req.ProductID),
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
		MarketPrice:  req.MarketPrice,
		Category:     strings.TrimSpace(req.Category),
		Image:        image,
		Images:       req.Images,
		Sizes:        sizes,
		Colors:       req.Colors,
		InStock:      inStock,
		Description:  req.Description,
		IsNewArrival: req.IsNewArrival,
	}
}
