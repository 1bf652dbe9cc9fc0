package services

import (
	"context"
	"fmt"
	"strings"

	"clothing-store/models"
	"clothing-store/repositories"
)

type WishlistService struct {
	wishlists repositories.WishlistRepository
	products  repositories.ProductResolver
}

func NewWishlistService(wishlists repositories.WishlistRepository, products repositories.ProductResolver) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

func (s *WishlistService) Status(ctx context.Context, userID, productID string) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, models.ErrValidation("Product ID is required")
	}
	in, err := s.wishlists.InWishlist(ctx, userID, productID)
	if err != nil {
		return false, notFoundOr(err, "User not found", "wishlist status")
	}
	return in, nil
}

// Toggle flips membership atomically and returns the new state.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, models.ErrValidation("Product ID is required")
	}
	in, err := s.wishlists.ToggleWishlist(ctx, userID, productID)
	if err != nil {
		return false, notFoundOr(err, "User not found", "toggle wishlist")
	}
	return in, nil
}

// ListProducts resolves the wishlist in one batch, keeping wishlist order and
// skipping products that no longer exist.
func (s *WishlistService) ListProducts(ctx context.Context, userID string) ([]models.Product, error) {
	ids, err := s.wishlists.GetWishlist(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "load wishlist")
	}

	found, err := s.products.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve wishlist products: %w", err)
	}

	products := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := found[id]; ok {
			p.Reviews = nil
			products = append(products, p)
		}
	}
	return products, nil
}
