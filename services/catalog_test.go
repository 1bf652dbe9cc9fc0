package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"clothing-store/models"
	"clothing-store/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache mirrors the JSON round trip the redis cache performs.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.data {
		if strings.HasPrefix(key, prefix) {
			delete(c.data, key)
		}
	}
	return nil
}

func productRequest(id string) models.ProductRequest {
	return models.ProductRequest{
		ProductID: id,
		Name:      "Linen Shirt",
		Price:     1299,
		Category:  "shirts",
		Images:    []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"},
		Colors:    []string{"white"},
	}
}

func TestCatalogCreateDefaults(t *testing.T) {
	store := memory.New()
	svc := NewCatalogService(store, store, nil, nullLogger())

	product, err := svc.Create(context.Background(), productRequest("shirt-1"))
	require.NoError(t, err)
	assert.True(t, product.InStock)
	assert.Equal(t, "https://img.example.com/1.jpg", product.Image)
	assert.NotNil(t, product.Sizes)

	_, err = svc.Create(context.Background(), productRequest("shirt-1"))
	requireKind(t, err, models.KindConflict)

	bad := productRequest("shirt-2")
	bad.MarketPrice = 999
	_, err = svc.Create(context.Background(), bad)
	requireKind(t, err, models.KindValidation)
}

func TestCatalogListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewCatalogService(store, store, newMapCache(), nullLogger())

	_, err := svc.Create(ctx, productRequest("shirt-1"))
	require.NoError(t, err)

	page, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.TotalItems)

	seedProduct(t, store, "direct", 10)
	page, err = svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.TotalItems, "served from cache")

	require.NoError(t, svc.Delete(ctx, "shirt-1"))
	page, err = svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.TotalItems)
	assert.Equal(t, "direct", page.Products[0].ProductID)
}

func TestCatalogDetailAndReviews(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	svc := NewCatalogService(store, store, nil, nullLogger())
	_, err := svc.Create(ctx, productRequest("shirt-1"))
	require.NoError(t, err)

	detail, err := svc.Detail(ctx, "shirt-1")
	require.NoError(t, err)
	assert.NotNil(t, detail.Reviews)
	assert.Empty(t, detail.Reviews)

	_, err = svc.AddReview(ctx, "shirt-1", user.ID, models.ReviewRequest{Rating: 6})
	requireKind(t, err, models.KindValidation)

	detail, err = svc.AddReview(ctx, "shirt-1", user.ID, models.ReviewRequest{Rating: 4, Comment: " Fits well "})
	require.NoError(t, err)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "Jane", detail.Reviews[0].UserName)
	assert.Equal(t, user.UserID, detail.Reviews[0].UserID)
	assert.Equal(t, "Fits well", detail.Reviews[0].Comment)

	_, err = svc.AddReview(ctx, "missing", user.ID, models.ReviewRequest{Rating: 4})
	requireKind(t, err, models.KindNotFound)
	_, err = svc.Detail(ctx, "missing")
	requireKind(t, err, models.KindNotFound)
}

func TestCatalogUpdateKeepsReviews(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	svc := NewCatalogService(store, store, newMapCache(), nullLogger())
	_, err := svc.Create(ctx, productRequest("shirt-1"))
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, "shirt-1", user.ID, models.ReviewRequest{Rating: 5})
	require.NoError(t, err)

	req := productRequest("shirt-1")
	req.Name = "Linen Shirt v2"
	inStock := false
	req.InStock = &inStock
	updated, err := svc.Update(ctx, "shirt-1", req)
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt v2", updated.Name)
	assert.False(t, updated.InStock)
	assert.Len(t, updated.Reviews, 1)

	_, err = svc.Update(ctx, "missing", productRequest("missing"))
	requireKind(t, err, models.KindNotFound)
}

func TestCatalogGalleryAndArrivals(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewCatalogService(store, store, newMapCache(), nullLogger())

	for _, id := range []string{"a", "b", "c"} {
		req := productRequest(id)
		req.IsNewArrival = id != "a"
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	gallery, err := svc.GalleryByCategory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, gallery, 1)
	assert.Len(t, gallery[0].Products, 2)

	arrivals, err := svc.NewArrivals(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, arrivals, 2)

	page, err := svc.NewArrivalsPage(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Meta.TotalItems)
	assert.Len(t, page.Products, 1)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shirts"}, categories)
}
