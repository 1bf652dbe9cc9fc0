package memory

import (
	"context"
	"sort"
	"time"

	"clothing-store/models"
)

func (s *Store) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ProductID]; exists {
		return models.ErrDuplicateKey
	}
	product.ID = s.nextIDLocked()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	s.products[product.ProductID] = cloneProduct(*product)
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, productID string, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[productID]
	if !ok {
		return models.ErrRecordNotFound
	}
	if product.ProductID != productID {
		if _, taken := s.products[product.ProductID]; taken {
			return models.ErrDuplicateKey
		}
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	product.Reviews = existing.Reviews

	delete(s.products, productID)
	s.products[product.ProductID] = cloneProduct(*product)
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[productID]; !ok {
		return models.ErrRecordNotFound
	}
	delete(s.products, productID)
	return nil
}

func (s *Store) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (s *Store) ResolveProducts(_ context.Context, productIDs []string) (map[string]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := s.products[id]; ok {
			out[id] = cloneProduct(p)
		}
	}
	return out, nil
}

func (s *Store) ListProducts(_ context.Context, page, limit int) ([]models.Product, int, error) {
	all := s.sortedProducts(nil)
	for i := range all {
		all[i].Images = nil
		all[i].Reviews = nil
	}
	return paginate(all, page, limit), len(all), nil
}

func (s *Store) GalleryByCategory(_ context.Context, perCategory int) ([]models.CategoryGallery, error) {
	all := s.sortedProducts(nil)

	byCategory := make(map[string][]models.Product)
	var order []string
	for _, p := range all {
		if _, seen := byCategory[p.Category]; !seen {
			order = append(order, p.Category)
		}
		if len(byCategory[p.Category]) < perCategory {
			byCategory[p.Category] = append(byCategory[p.Category], p)
		}
	}
	sort.Strings(order)

	galleries := make([]models.CategoryGallery, 0, len(order))
	for _, category := range order {
		galleries = append(galleries, models.CategoryGallery{Category: category, Products: byCategory[category]})
	}
	return galleries, nil
}

func (s *Store) ListNewArrivals(_ context.Context, page, limit int) ([]models.ProductSummary, int, error) {
	all := s.sortedProducts(func(p models.Product) bool { return p.IsNewArrival })
	summaries := make([]models.ProductSummary, 0, len(all))
	for i := range all {
		summaries = append(summaries, all[i].Summary())
	}
	return paginate(summaries, page, limit), len(summaries), nil
}

func (s *Store) ListCategories(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) AppendReview(_ context.Context, productID string, review models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return models.ErrRecordNotFound
	}
	p.Reviews = append(append([]models.Review{}, p.Reviews...), review)
	s.products[productID] = p
	return nil
}

// sortedProducts returns copies newest first, optionally filtered.
func (s *Store) sortedProducts(keep func(models.Product) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep != nil && !keep(p) {
			continue
		}
		all = append(all, cloneProduct(p))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ProductID < all[j].ProductID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func cloneProduct(p models.Product) models.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Sizes = append([]string{}, p.Sizes...)
	p.Colors = append([]string{}, p.Colors...)
	p.Reviews = append([]models.Review(nil), p.Reviews...)
	return p
}
