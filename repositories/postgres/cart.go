package postgres

import (
	"context"
	"errors"

	"clothing-store/models"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	rowID, ok := parseID(userID)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	if err := s.ensureUser(ctx, rowID); err != nil {
		return nil, err
	}

	query := `SELECT product_id, quantity, size, color FROM cart_items WHERE user_id = $1 ORDER BY created_at, product_id`
	rows, err := s.db.Query(ctx, query, rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Size, &item.Color); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) UpsertCartItem(ctx context.Context, userID string, item models.CartItem) error {
	rowID, ok := parseID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	query := `
		INSERT INTO cart_items (user_id, product_id, size, color, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id, size, color)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`
	_, err := s.db.Exec(ctx, query, rowID, item.ProductID, item.Size, item.Color, item.Quantity)
	return translate(err)
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, userID string, key models.CartKey, quantity int) error {
	rowID, ok := parseID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	query := `
		UPDATE cart_items SET quantity = $5
		WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4
	`
	tag, err := s.db.Exec(ctx, query, rowID, key.ProductID, key.Size, key.Color, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func (s *Store) RemoveCartItem(ctx context.Context, userID string, key models.CartKey) error {
	rowID, ok := parseID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	if err := s.ensureUser(ctx, rowID); err != nil {
		return err
	}
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2 AND size = $3 AND color = $4`
	_, err := s.db.Exec(ctx, query, rowID, key.ProductID, key.Size, key.Color)
	return err
}

func (s *Store) ClearCart(ctx context.Context, userID string) error {
	rowID, ok := parseID(userID)
	if !ok {
		return models.ErrRecordNotFound
	}
	if err := s.ensureUser(ctx, rowID); err != nil {
		return err
	}
	_, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, rowID)
	return err
}

func (s *Store) GetWishlist(ctx context.Context, userID string) ([]string, error) {
	rowID, ok := parseID(userID)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	if err := s.ensureUser(ctx, rowID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `SELECT product_id FROM wishlist_items WHERE user_id = $1 ORDER BY created_at`, rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) InWishlist(ctx context.Context, userID, productID string) (bool, error) {
	rowID, ok := parseID(userID)
	if !ok {
		return false, models.ErrRecordNotFound
	}
	if err := s.ensureUser(ctx, rowID); err != nil {
		return false, err
	}
	return s.wishlisted(ctx, rowID, productID)
}

func (s *Store) wishlisted(ctx context.Context, rowID int64, productID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`
	err := s.db.QueryRow(ctx, query, rowID, productID).Scan(&exists)
	return exists, err
}

// ToggleWishlist deletes the entry if present and inserts it otherwise, in one
// statement. No returned row means either the entry was removed or a
// concurrent toggle inserted it first, so membership is read back.
func (s *Store) ToggleWishlist(ctx context.Context, userID, productID string) (bool, error) {
	rowID, ok := parseID(userID)
	if !ok {
		return false, models.ErrRecordNotFound
	}
	query := `
		WITH removed AS (
			DELETE FROM wishlist_items
			WHERE user_id = $1::bigint AND product_id = $2::varchar
			RETURNING 1
		)
		INSERT INTO wishlist_items (user_id, product_id)
		SELECT $1::bigint, $2::varchar
		WHERE NOT EXISTS (SELECT 1 FROM removed)
		ON CONFLICT DO NOTHING
		RETURNING true
	`
	var added bool
	err := s.db.QueryRow(ctx, query, rowID, productID).Scan(&added)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.wishlisted(ctx, rowID, productID)
	}
	if err != nil {
		return false, translate(err)
	}
	return added, nil
}
