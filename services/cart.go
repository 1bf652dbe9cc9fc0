package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"clothing-store/models"
	"clothing-store/repositories"
)

type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductResolver
}

func NewCartService(carts repositories.CartRepository, products repositories.ProductResolver) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetCart joins the stored lines with the catalog. Lines whose product has
// been deleted are left out.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.CartView, error) {
	items, err := s.carts.GetCartItems(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User not found", "load cart")
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cart products: %w", err)
	}

	view := &models.CartView{Items: []models.CartLine{}}
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		product.Reviews = nil
		view.Items = append(view.Items, models.CartLine{
			Product:  product,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
		})
		view.Count += item.Quantity
		view.Subtotal += product.Price * float64(item.Quantity)
	}
	view.Subtotal = math.Round(view.Subtotal*100) / 100
	return view, nil
}

// AddOrUpdate overwrites the quantity of an existing line with the same
// product, size and color, or appends a new line.
func (s *CartService) AddOrUpdate(ctx context.Context, userID string, req models.CartItemRequest) (*models.CartView, error) {
	item := models.CartItem{
		ProductID: strings.TrimSpace(req.ProductID),
		Quantity:  req.Quantity,
		Size:      strings.TrimSpace(req.Size),
		Color:     strings.TrimSpace(req.Color),
	}
	if err := validateLine(item.ProductID, item.Quantity); err != nil {
		return nil, err
	}

	found, err := s.products.ResolveProducts(ctx, []string{item.ProductID})
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	if _, ok := found[item.ProductID]; !ok {
		return nil, models.ErrNotFound("Product not found")
	}

	if err := s.carts.UpsertCartItem(ctx, userID, item); err != nil {
		return nil, notFoundOr(err, "User not found", "upsert cart item")
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, req models.CartItemRequest) (*models.CartView, error) {
	key := lineKey(req.ProductID, req.Size, req.Color)
	if err := validateLine(key.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.carts.UpdateCartItemQuantity(ctx, userID, key, req.Quantity); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrNotFound("Item not found in cart")
		}
		return nil, fmt.Errorf("update cart quantity: %w", err)
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID string, req models.CartLineRequest) (*models.CartView, error) {
	key := lineKey(req.ProductID, req.Size, req.Color)
	if key.ProductID == "" {
		return nil, models.ErrValidation("Product ID is required", models.FieldError{Field: "productId", Message: "productId is required"})
	}

	if err := s.carts.RemoveCartItem(ctx, userID, key); err != nil {
		return nil, notFoundOr(err, "User not found", "remove cart item")
	}
	return s.GetCart(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.ClearCart(ctx, userID); err != nil {
		return notFoundOr(err, "User not found", "clear cart")
	}
	return nil
}

func lineKey(productID, size, color string) models.CartKey {
	return models.CartKey{
		ProductID: strings.TrimSpace(productID),
		Size:      strings.TrimSpace(size),
		Color:     strings.TrimSpace(color),
	}
}

func validateLine(productID string, quantity int) error {
	var fields []models.FieldError
	if productID == "" {
		fields = append(fields, models.FieldError{Field: "productId", Message: "productId is required"})
	}
	if quantity < 1 {
		fields = append(fields, models.FieldError{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if len(fields) > 0 {
		return models.ErrValidation("Invalid cart item", fields...)
	}
	return nil
}
