package services

import (
	"context"
	"sync"
	"testing"

	"clothing-store/models"
	"clothing-store/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddOverwritesQuantity(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	seedProduct(t, store, "p1", 499.99)
	svc := NewCartService(store, store)

	_, err := svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 2, Size: "M", Color: "black"})
	require.NoError(t, err)
	view, err := svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 5, Size: "M", Color: "black"})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, 5, view.Count)
	assert.Equal(t, 2499.95, view.Subtotal)
}

func TestCartLinesDifferByColor(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	seedProduct(t, store, "p1", 100)
	svc := NewCartService(store, store)

	_, err := svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 1, Size: "M", Color: "black"})
	require.NoError(t, err)
	view, err := svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 2, Size: "M", Color: "white"})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Count)

	view, err = svc.UpdateQuantity(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 4, Size: "M", Color: "white"})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Count)

	view, err = svc.Remove(ctx, user.ID, models.CartLineRequest{ProductID: "p1", Size: "M", Color: "black"})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "white", view.Items[0].Color)

	_, err = svc.UpdateQuantity(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 1, Size: "L", Color: "white"})
	requireKind(t, err, models.KindNotFound)
}

func TestCartValidation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	svc := NewCartService(store, store)

	_, err := svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 0})
	requireKind(t, err, models.KindValidation)

	_, err = svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "missing", Quantity: 1})
	requireKind(t, err, models.KindNotFound)
}

func TestCartDropsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	seedProduct(t, store, "p1", 100)
	seedProduct(t, store, "p2", 50)
	svc := NewCartService(store, store)

	_, err := svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p2", Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, store.DeleteProduct(ctx, "p1"))

	view, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p2", view.Items[0].Product.ProductID)
	assert.Equal(t, 100.0, view.Subtotal)

	require.NoError(t, svc.Clear(ctx, user.ID))
	view, err = svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Count)
}

func TestCartUnknownUser(t *testing.T) {
	svc := NewCartService(memory.New(), memory.New())

	_, err := svc.GetCart(context.Background(), "missing")
	requireKind(t, err, models.KindNotFound)
}

func TestCartConcurrentAddsKeepOneLine(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	seedProduct(t, store, "p1", 100)
	svc := NewCartService(store, store)

	const writers = 12
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AddOrUpdate(ctx, user.ID, models.CartItemRequest{ProductID: "p1", Quantity: i + 1, Size: "M", Color: "black"})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	view, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, view.Items[0].Quantity, view.Count)
}
