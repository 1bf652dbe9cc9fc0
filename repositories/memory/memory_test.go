package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"clothing-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	u := &models.User{UserID: "u-" + email, Name: "Test", Email: email, Password: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := New()
	seedUser(t, s, "jane@example.com")

	err := s.CreateUser(context.Background(), &models.User{UserID: "other", Email: "JANE@example.com"})
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
}

func TestCartUpsertReplacesQuantity(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := seedUser(t, s, "jane@example.com")

	require.NoError(t, s.UpsertCartItem(ctx, u.ID, models.CartItem{ProductID: "p1", Quantity: 2, Size: "M", Color: "red"}))
	require.NoError(t, s.UpsertCartItem(ctx, u.ID, models.CartItem{ProductID: "p1", Quantity: 5, Size: "M", Color: "red"}))
	require.NoError(t, s.UpsertCartItem(ctx, u.ID, models.CartItem{ProductID: "p1", Quantity: 1, Size: "M", Color: "blue"}))

	items, err := s.GetCartItems(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "blue", items[1].Color)

	key := models.CartKey{ProductID: "p1", Size: "M", Color: "red"}
	require.NoError(t, s.RemoveCartItem(ctx, u.ID, key))
	assert.ErrorIs(t, s.UpdateCartItemQuantity(ctx, u.ID, key, 3), models.ErrRecordNotFound)

	require.NoError(t, s.ClearCart(ctx, u.ID))
	items, err = s.GetCartItems(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestToggleWishlist(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := seedUser(t, s, "jane@example.com")

	added, err := s.ToggleWishlist(ctx, u.ID, "p1")
	require.NoError(t, err)
	assert.True(t, added)

	in, err := s.InWishlist(ctx, u.ID, "p1")
	require.NoError(t, err)
	assert.True(t, in)

	added, err = s.ToggleWishlist(ctx, u.ID, "p1")
	require.NoError(t, err)
	assert.False(t, added)

	list, err := s.GetWishlist(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestResetTokenExpiry(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := seedUser(t, s, "jane@example.com")
	now := time.Now()

	require.NoError(t, s.SetUserResetToken(ctx, u.ID, "hash-1", now.Add(30*time.Minute)))

	found, err := s.GetUserByResetToken(ctx, "hash-1", now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = s.GetUserByResetToken(ctx, "hash-1", now.Add(31*time.Minute))
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	require.NoError(t, s.UpdateUserPassword(ctx, u.ID, "new-hash"))
	_, err = s.GetUserByResetToken(ctx, "hash-1", now)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
}

func TestCountPlacedOrdersSkipsCancelledAndFailed(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i, status := range []models.OrderStatus{
		models.OrderStatusCompleted,
		models.OrderStatusPending,
		models.OrderStatusCancelled,
		models.OrderStatusFailed,
	} {
		require.NoError(t, s.CreateOrder(ctx, &models.Order{
			RazorpayOrderID: string(rune('a' + i)),
			Email:           "jane@example.com",
			Status:          status,
		}))
	}

	count, err := s.CountPlacedOrders(ctx, "JANE@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = s.CreateOrder(ctx, &models.Order{RazorpayOrderID: "a"})
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
}

func TestProductListingsAndReviews(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Now().Add(-time.Hour)

	products := []models.Product{
		{ProductID: "p1", Name: "Tee", Category: "tops", Colors: []string{"white"}, Images: []string{"a.jpg"}, CreatedAt: base},
		{ProductID: "p2", Name: "Jeans", Category: "bottoms", Colors: []string{"blue"}, IsNewArrival: true, CreatedAt: base.Add(time.Minute)},
		{ProductID: "p3", Name: "Shirt", Category: "tops", Colors: []string{"black"}, IsNewArrival: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range products {
		require.NoError(t, s.CreateProduct(ctx, &products[i]))
	}

	list, total, err := s.ListProducts(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "p3", list[0].ProductID)

	arrivals, total, err := s.ListNewArrivals(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "p3", arrivals[0].ProductID)

	gallery, err := s.GalleryByCategory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, gallery, 2)
	assert.Equal(t, "bottoms", gallery[0].Category)
	assert.Len(t, gallery[1].Products, 1)

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bottoms", "tops"}, categories)

	require.NoError(t, s.AppendReview(ctx, "p1", models.Review{Rating: 5, Comment: "great"}))
	p, err := s.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, p.Reviews, 1)

	resolved, err := s.ResolveProducts(ctx, []string{"p1", "missing"})
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestFailedNotifications(t *testing.T) {
	ctx := context.Background()
	s := New()

	fresh := &models.Notification{Kind: "welcome", To: []string{"a@b.co"}, Attempts: 1}
	spent := &models.Notification{Kind: "welcome", To: []string{"a@b.co"}, Attempts: 5}
	require.NoError(t, s.SaveFailedNotification(ctx, fresh))
	require.NoError(t, s.SaveFailedNotification(ctx, spent))

	pending, err := s.ListFailedNotifications(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, fresh.ID, pending[0].ID)

	require.NoError(t, s.DeleteFailedNotification(ctx, fresh.ID))
	pending, err = s.ListFailedNotifications(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestConcurrentWishlistTogglesKeepOneEntry(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := seedUser(t, s, "jane@example.com")

	const toggles = 25
	var wg sync.WaitGroup
	errs := make([]error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.ToggleWishlist(ctx, u.ID, "p1")
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	in, err := s.InWishlist(ctx, u.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, toggles%2 == 1, in)
	ids, err := s.GetWishlist(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestConcurrentCartUpsertsKeepOneLine(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := seedUser(t, s, "jane@example.com")

	const writers = 20
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.UpsertCartItem(ctx, u.ID, models.CartItem{ProductID: "p1", Quantity: i + 1, Size: "M", Color: "red"})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	items, err := s.GetCartItems(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.GreaterOrEqual(t, items[0].Quantity, 1)
	assert.LessOrEqual(t, items[0].Quantity, writers)
}
