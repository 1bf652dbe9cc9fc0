package postgres

import (
	"context"
	"encoding/json"
	"time"

	"clothing-store/models"

	"github.com/jackc/pgx/v5"
)

const productColumns = `id::text, product_id, name, price, market_price, category, image, images,
	sizes, colors, in_stock, description, is_new_arrival, reviews, created_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.ProductID, &p.Name, &p.Price, &p.MarketPrice, &p.Category, &p.Image, &p.Images,
		&p.Sizes, &p.Colors, &p.InStock, &p.Description, &p.IsNewArrival, &p.Reviews, &p.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (product_id, name, price, market_price, category, image, images, sizes,
			colors, in_stock, description, is_new_arrival, reviews, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, '[]'::jsonb, $13)
		RETURNING id::text, created_at
	`
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	return translate(s.db.QueryRow(ctx, query,
		product.ProductID, product.Name, product.Price, product.MarketPrice, product.Category,
		product.Image, nonNil(product.Images), nonNil(product.Sizes), product.Colors, product.InStock,
		product.Description, product.IsNewArrival, product.CreatedAt,
	).Scan(&product.ID, &product.CreatedAt))
}

func (s *Store) UpdateProduct(ctx context.Context, productID string, product *models.Product) error {
	query := `
		UPDATE products SET product_id = $2, name = $3, price = $4, market_price = $5, category = $6,
			image = $7, images = $8, sizes = $9, colors = $10, in_stock = $11, description = $12,
			is_new_arrival = $13
		WHERE product_id = $1
		RETURNING id::text, created_at
	`
	return translate(s.db.QueryRow(ctx, query, productID,
		product.ProductID, product.Name, product.Price, product.MarketPrice, product.Category,
		product.Image, nonNil(product.Images), nonNil(product.Sizes), product.Colors, product.InStock,
		product.Description, product.IsNewArrival,
	).Scan(&product.ID, &product.CreatedAt))
}

func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	return scanProduct(s.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = $1`, productID))
}

func (s *Store) ResolveProducts(ctx context.Context, productIDs []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	rows, err := s.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return nil, err
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ProductID] = p
	}
	return out, nil
}

func (s *Store) ListProducts(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id::text, product_id, name, price, market_price, category, image, '{}'::text[],
			sizes, colors, in_stock, description, is_new_arrival, '[]'::jsonb, created_at
		FROM products ORDER BY created_at DESC, product_id LIMIT $1 OFFSET $2
	`
	rows, err := s.db.Query(ctx, query, limit, offset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	for i := range products {
		products[i].Images = nil
		products[i].Reviews = nil
	}
	return products, total, nil
}

func (s *Store) GalleryByCategory(ctx context.Context, perCategory int) ([]models.CategoryGallery, error) {
	query := `
		SELECT ` + productColumns + ` FROM (
			SELECT p.*, ROW_NUMBER() OVER (PARTITION BY category ORDER BY created_at DESC, product_id) AS rn
			FROM products p
		) ranked
		WHERE rn <= $1
		ORDER BY category, created_at DESC, product_id
	`
	rows, err := s.db.Query(ctx, query, perCategory)
	if err != nil {
		return nil, err
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}

	galleries := []models.CategoryGallery{}
	for _, p := range products {
		if n := len(galleries); n == 0 || galleries[n-1].Category != p.Category {
			galleries = append(galleries, models.CategoryGallery{Category: p.Category})
		}
		last := &galleries[len(galleries)-1]
		last.Products = append(last.Products, p)
	}
	return galleries, nil
}

func (s *Store) ListNewArrivals(ctx context.Context, page, limit int) ([]models.ProductSummary, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_new_arrival`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT product_id, name, price, market_price, image, category, created_at
		FROM products WHERE is_new_arrival
		ORDER BY created_at DESC, product_id LIMIT $1 OFFSET $2
	`
	rows, err := s.db.Query(ctx, query, limit, offset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	summaries := []models.ProductSummary{}
	for rows.Next() {
		var p models.ProductSummary
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Price, &p.MarketPrice, &p.Image, &p.Category, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, p)
	}
	return summaries, total, rows.Err()
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AppendReview appends in place so concurrent reviews are never lost.
func (s *Store) AppendReview(ctx context.Context, productID string, review models.Review) error {
	payload, err := json.Marshal(review)
	if err != nil {
		return err
	}
	query := `UPDATE products SET reviews = reviews || jsonb_build_array($2::jsonb) WHERE product_id = $1`
	tag, err := s.db.Exec(ctx, query, productID, string(payload))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
