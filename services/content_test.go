package services

import (
	"context"
	"testing"

	"clothing-store/models"
	"clothing-store/repositories/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBannerLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewBannerService(memory.New())

	inactive := false
	hidden, err := svc.Create(ctx, models.BannerRequest{Image: "b.jpg", IsActive: &inactive, Order: 1})
	require.NoError(t, err)
	shown, err := svc.Create(ctx, models.BannerRequest{Image: "a.jpg", Order: 2})
	require.NoError(t, err)
	assert.True(t, shown.IsActive)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, shown.ID, active[0].ID)

	toggled, err := svc.Toggle(ctx, hidden.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	active, err = svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, hidden.ID, active[0].ID)

	_, err = svc.Create(ctx, models.BannerRequest{Image: " "})
	requireKind(t, err, models.KindValidation)
	requireKind(t, svc.Delete(ctx, "missing"), models.KindNotFound)
	_, err = svc.Toggle(ctx, "missing")
	requireKind(t, err, models.KindNotFound)
	require.NoError(t, svc.Delete(ctx, hidden.ID))
}

func TestAnnouncements(t *testing.T) {
	ctx := context.Background()
	svc := NewAnnouncementService(memory.New())

	created, err := svc.Create(ctx, models.AnnouncementRequest{Text: "  Free shipping over 999  "})
	require.NoError(t, err)
	assert.Equal(t, "Free shipping over 999", created.Text)

	_, err = svc.Create(ctx, models.AnnouncementRequest{Text: "   "})
	requireKind(t, err, models.KindValidation)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	requireKind(t, svc.Delete(ctx, created.ID), models.KindNotFound)
}

func TestUserListPaginates(t *testing.T) {
	store := memory.New()
	seedCustomer(t, store, "a@example.com")
	seedCustomer(t, store, "b@example.com")
	svc := NewUserService(store)

	page, err := svc.List(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Len(t, page.Users, 1)
	assert.Equal(t, 2, page.Meta.TotalItems)
}
