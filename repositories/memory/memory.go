package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"clothing-store/models"
	"clothing-store/repositories"
)

// Store is an in-memory implementation of repositories.Store. It is safe for
// concurrent use and is intended for tests and local development.
type Store struct {
	mu            sync.RWMutex
	nextID        int64
	users         map[string]models.User
	usersByEmail  map[string]string
	products      map[string]models.Product
	orders        []models.Order
	banners       map[string]models.Banner
	announcements map[string]models.Announcement
	notifications map[string]models.Notification
}

var _ repositories.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		nextID:        1,
		users:         make(map[string]models.User),
		usersByEmail:  make(map[string]string),
		products:      make(map[string]models.Product),
		banners:       make(map[string]models.Banner),
		announcements: make(map[string]models.Announcement),
		notifications: make(map[string]models.Notification),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) Close(context.Context) error {
	return nil
}

// UserRepository ---------------------------------------------------------------

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := s.usersByEmail[email]; exists {
		return models.ErrDuplicateKey
	}
	for _, u := range s.users {
		if u.UserID == user.UserID {
			return models.ErrDuplicateKey
		}
	}

	now := time.Now().UTC()
	user.ID = s.nextIDLocked()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}
	if user.Cart == nil {
		user.Cart = []models.CartItem{}
	}

	s.users[user.ID] = cloneUser(*user)
	s.usersByEmail[email] = user.ID
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	out := cloneUser(s.users[id])
	return &out, nil
}

func (s *Store) GetUserByResetToken(_ context.Context, tokenHash string, now time.Time) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ResetPasswordToken == "" || u.ResetPasswordToken != tokenHash {
			continue
		}
		if u.ResetPasswordExpires == nil || !u.ResetPasswordExpires.After(now) {
			continue
		}
		out := cloneUser(u)
		return &out, nil
	}
	return nil, models.ErrRecordNotFound
}

func (s *Store) ListUsers(_ context.Context, page, limit int) ([]models.User, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, page, limit), len(all), nil
}

func (s *Store) UpdateUserProfile(_ context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u

	out := cloneUser(u)
	return &out, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	u.Password = passwordHash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpires = nil
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return nil
}

func (s *Store) SetUserResetToken(_ context.Context, id, tokenHash string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	u.ResetPasswordToken = tokenHash
	u.ResetPasswordExpires = &expires
	u.UpdatedAt = time.Now().UTC()
	s.users[id] = u
	return nil
}

// CartRepository ---------------------------------------------------------------

func (s *Store) GetCartItems(_ context.Context, userID string) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return append([]models.CartItem{}, u.Cart...), nil
}

func (s *Store) UpsertCartItem(_ context.Context, userID string, item models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return models.ErrRecordNotFound
	}
	for i := range u.Cart {
		if u.Cart[i].Key() == item.Key() {
			u.Cart[i].Quantity = item.Quantity
			s.users[userID] = u
			return nil
		}
	}
	u.Cart = append(u.Cart, item)
	s.users[userID] = u
	return nil
}

func (s *Store) UpdateCartItemQuantity(_ context.Context, userID string, key models.CartKey, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return models.ErrRecordNotFound
	}
	for i := range u.Cart {
		if u.Cart[i].Key() == key {
			u.Cart[i].Quantity = quantity
			s.users[userID] = u
			return nil
		}
	}
	return models.ErrRecordNotFound
}

func (s *Store) RemoveCartItem(_ context.Context, userID string, key models.CartKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return models.ErrRecordNotFound
	}
	kept := u.Cart[:0:0]
	for _, line := range u.Cart {
		if line.Key() != key {
			kept = append(kept, line)
		}
	}
	u.Cart = kept
	s.users[userID] = u
	return nil
}

func (s *Store) ClearCart(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return models.ErrRecordNotFound
	}
	u.Cart = []models.CartItem{}
	s.users[userID] = u
	return nil
}

// WishlistRepository -----------------------------------------------------------

func (s *Store) GetWishlist(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return append([]string{}, u.Wishlist...), nil
}

func (s *Store) InWishlist(_ context.Context, userID, productID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return false, models.ErrRecordNotFound
	}
	for _, id := range u.Wishlist {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ToggleWishlist(_ context.Context, userID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return false, models.ErrRecordNotFound
	}
	for i, id := range u.Wishlist {
		if id == productID {
			u.Wishlist = append(append([]string{}, u.Wishlist[:i]...), u.Wishlist[i+1:]...)
			s.users[userID] = u
			return false, nil
		}
	}
	u.Wishlist = append(append([]string{}, u.Wishlist...), productID)
	s.users[userID] = u
	return true, nil
}

func cloneUser(u models.User) models.User {
	u.Wishlist = append([]string{}, u.Wishlist...)
	u.Cart = append([]models.CartItem{}, u.Cart...)
	if u.ResetPasswordExpires != nil {
		t := *u.ResetPasswordExpires
		u.ResetPasswordExpires = &t
	}
	return u
}

func paginate[T any](all []T, page, limit int) []T {
	start := (page - 1) * limit
	if start < 0 || start >= len(all) {
		return []T{}
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
