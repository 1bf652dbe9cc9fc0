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

func TestWishlistToggleTwiceRestoresState(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	seedProduct(t, store, "p1", 100)
	svc := NewWishlistService(store, store)

	in, err := svc.Toggle(ctx, user.ID, "p1")
	require.NoError(t, err)
	assert.True(t, in)

	status, err := svc.Status(ctx, user.ID, "p1")
	require.NoError(t, err)
	assert.True(t, status)

	in, err = svc.Toggle(ctx, user.ID, "p1")
	require.NoError(t, err)
	assert.False(t, in)

	status, err = svc.Status(ctx, user.ID, "p1")
	require.NoError(t, err)
	assert.False(t, status)
}

func TestWishlistListKeepsOrderAndSkipsMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	user := seedCustomer(t, store, "jane@example.com")
	seedProduct(t, store, "p1", 100)
	seedProduct(t, store, "p2", 200)
	svc := NewWishlistService(store, store)

	for _, id := range []string{"p2", "gone", "p1"} {
		_, err := svc.Toggle(ctx, user.ID, id)
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[0].ProductID)
	assert.Equal(t, "p1", products[1].ProductID)

	_, err = svc.Toggle(ctx, user.ID, " ")
	requireKind(t, err, models.KindValidation)
}

func TestWishlistConcurrentTogglesNeverDuplicate(t *testing.T) {
	for _, toggles := range []int{16, 17} {
		ctx := context.Background()
		store := memory.New()
		user := seedCustomer(t, store, "jane@example.com")
		seedProduct(t, store, "p1", 100)
		svc := NewWishlistService(store, store)

		var wg sync.WaitGroup
		errs := make([]error, toggles)
		for i := 0; i < toggles; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Toggle(ctx, user.ID, "p1")
			}(i)
		}
		wg.Wait()
		for _, err := range errs {
			require.NoError(t, err)
		}

		status, err := svc.Status(ctx, user.ID, "p1")
		require.NoError(t, err)
		assert.Equal(t, toggles%2 == 1, status, "toggles=%d", toggles)

		products, err := svc.ListProducts(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, products, toggles%2, "toggles=%d", toggles)
	}
}
