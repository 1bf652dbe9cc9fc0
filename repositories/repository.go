package repositories

import (
	"context"
	"time"

	"clothing-store/models"
)

// Every backend returns models.ErrRecordNotFound when a lookup or targeted
// update matches nothing and models.ErrDuplicateKey on unique violations.

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByResetToken matches the stored token hash and requires the
	// expiry to be after now.
	GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]models.User, int, error)
	UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error)
	// UpdateUserPassword also clears any pending reset token.
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error
	SetUserResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error
}

// CartRepository mutates one line at a time. Lines are identified by
// models.CartKey.
type CartRepository interface {
	GetCartItems(ctx context.Context, userID string) ([]models.CartItem, error)
	UpsertCartItem(ctx context.Context, userID string, item models.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, userID string, key models.CartKey, quantity int) error
	RemoveCartItem(ctx context.Context, userID string, key models.CartKey) error
	ClearCart(ctx context.Context, userID string) error
}

type WishlistRepository interface {
	GetWishlist(ctx context.Context, userID string) ([]string, error)
	InWishlist(ctx context.Context, userID, productID string) (bool, error)
	// ToggleWishlist adds or removes productID in a single atomic step and
	// reports whether it is now present.
	ToggleWishlist(ctx context.Context, userID, productID string) (bool, error)
}

// ProductResolver maps external product ids to products. Ids with no
// matching product are absent from the result.
type ProductResolver interface {
	ResolveProducts(ctx context.Context, productIDs []string) (map[string]models.Product, error)
}

type ProductRepository interface {
	ProductResolver
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, productID string, product *models.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	// ListProducts omits the images gallery and reviews.
	ListProducts(ctx context.Context, page, limit int) ([]models.Product, int, error)
	GalleryByCategory(ctx context.Context, perCategory int) ([]models.CategoryGallery, error)
	ListNewArrivals(ctx context.Context, page, limit int) ([]models.ProductSummary, int, error)
	ListCategories(ctx context.Context) ([]string, error)
	AppendReview(ctx context.Context, productID string, review models.Review) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	ListOrders(ctx context.Context, page, limit int) ([]models.Order, int, error)
	// CountPlacedOrders counts orders for email that are not cancelled or failed.
	CountPlacedOrders(ctx context.Context, email string) (int, error)
}

type BannerRepository interface {
	CreateBanner(ctx context.Context, banner *models.Banner) error
	UpdateBanner(ctx context.Context, banner *models.Banner) error
	DeleteBanner(ctx context.Context, id string) error
	ToggleBanner(ctx context.Context, id string) (*models.Banner, error)
	// ListBanners is sorted by order, then newest first.
	ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error)
}

type AnnouncementRepository interface {
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id string) error
}

// NotificationRepository holds mails that could not be delivered.
type NotificationRepository interface {
	SaveFailedNotification(ctx context.Context, n *models.Notification) error
	ListFailedNotifications(ctx context.Context, maxAttempts, limit int) ([]models.Notification, error)
	DeleteFailedNotification(ctx context.Context, id string) error
}

// Store is implemented by every backend.
type Store interface {
	UserRepository
	CartRepository
	WishlistRepository
	ProductRepository
	OrderRepository
	BannerRepository
	AnnouncementRepository
	NotificationRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Normalize clamps page and limit to sane bounds.
func Normalize(page, limit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
