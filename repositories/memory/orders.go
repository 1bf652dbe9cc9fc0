package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"clothing-store/models"
)

func (s *Store) CreateOrder(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.RazorpayOrderID == order.RazorpayOrderID {
			return models.ErrDuplicateKey
		}
	}
	order.ID = s.nextIDLocked()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.orders = append(s.orders, cloneOrder(*order))
	return nil
}

func (s *Store) ListOrdersByEmail(_ context.Context, email string) ([]models.Order, error) {
	all := s.sortedOrders(func(o models.Order) bool { return strings.EqualFold(o.Email, email) })
	return all, nil
}

func (s *Store) ListOrders(_ context.Context, page, limit int) ([]models.Order, int, error) {
	all := s.sortedOrders(nil)
	return paginate(all, page, limit), len(all), nil
}

func (s *Store) CountPlacedOrders(_ context.Context, email string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, o := range s.orders {
		if !strings.EqualFold(o.Email, email) {
			continue
		}
		if o.Status == models.OrderStatusCancelled || o.Status == models.OrderStatusFailed {
			continue
		}
		count++
	}
	return count, nil
}

func (s *Store) sortedOrders(keep func(models.Order) bool) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Order{}
	for _, o := range s.orders {
		if keep != nil && !keep(o) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem{}, o.Items...)
	return o
}
