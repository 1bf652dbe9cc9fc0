package postgres

import (
	"context"
	"time"

	"clothing-store/models"

	"github.com/jackc/pgx/v5"
)

const orderColumns = `id::text, razorpay_order_id, payment_id, status, items, shipping_address, email,
	total_amount, promo_code, discount_amount, payment_method, created_at`

func collectOrders(rows pgx.Rows) ([]models.Order, error) {
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var status string
		err := rows.Scan(
			&o.ID, &o.RazorpayOrderID, &o.PaymentID, &status, &o.Items, &o.ShippingAddress, &o.Email,
			&o.TotalAmount, &o.PromoCode, &o.DiscountAmount, &o.PaymentMethod, &o.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		o.Status = models.OrderStatus(status)
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (razorpay_order_id, payment_id, status, items, shipping_address, email,
			total_amount, promo_code, discount_amount, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id::text
	`
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	return translate(s.db.QueryRow(ctx, query,
		order.RazorpayOrderID, order.PaymentID, string(order.Status), order.Items, order.ShippingAddress,
		order.Email, order.TotalAmount, order.PromoCode, order.DiscountAmount, order.PaymentMethod,
		order.CreatedAt,
	).Scan(&order.ID))
}

func (s *Store) ListOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE LOWER(email) = LOWER($1) ORDER BY created_at DESC`
	rows, err := s.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (s *Store) ListOrders(ctx context.Context, page, limit int) ([]models.Order, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := s.db.Query(ctx, query, limit, offset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	orders, err := collectOrders(rows)
	return orders, total, err
}

func (s *Store) CountPlacedOrders(ctx context.Context, email string) (int, error) {
	query := `
		SELECT COUNT(*) FROM orders
		WHERE LOWER(email) = LOWER($1) AND status NOT IN ('cancelled', 'failed')
	`
	var count int
	err := s.db.QueryRow(ctx, query, email).Scan(&count)
	return count, err
}
