package postgres

import (
	"context"

	"clothing-store/models"

	"github.com/jackc/pgx/v5"
)

func scanBanner(row pgx.Row) (*models.Banner, error) {
	var b models.Banner
	if err := row.Scan(&b.ID, &b.Image, &b.IsActive, &b.Order, &b.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (s *Store) CreateBanner(ctx context.Context, banner *models.Banner) error {
	query := `
		INSERT INTO banners (image, is_active, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at
	`
	return s.db.QueryRow(ctx, query, banner.Image, banner.IsActive, banner.Order).Scan(&banner.ID, &banner.CreatedAt)
}

func (s *Store) UpdateBanner(ctx context.Context, banner *models.Banner) error {
	rowID, ok := parseID(banner.ID)
	if !ok {
		return models.ErrRecordNotFound
	}
	query := `
		UPDATE banners SET image = $2, is_active = $3, sort_order = $4
		WHERE id = $1
		RETURNING created_at
	`
	return translate(s.db.QueryRow(ctx, query, rowID, banner.Image, banner.IsActive, banner.Order).Scan(&banner.CreatedAt))
}

func (s *Store) DeleteBanner(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM banners WHERE id = $1`, id)
}

func (s *Store) ToggleBanner(ctx context.Context, id string) (*models.Banner, error) {
	rowID, ok := parseID(id)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	query := `
		UPDATE banners SET is_active = NOT is_active
		WHERE id = $1
		RETURNING id::text, image, is_active, sort_order, created_at
	`
	return scanBanner(s.db.QueryRow(ctx, query, rowID))
}

func (s *Store) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	query := `
		SELECT id::text, image, is_active, sort_order, created_at FROM banners
		WHERE is_active OR NOT $1
		ORDER BY sort_order, created_at DESC
	`
	rows, err := s.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	banners := []models.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, err
		}
		banners = append(banners, *b)
	}
	return banners, rows.Err()
}

func (s *Store) CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error {
	query := `INSERT INTO announcements (text) VALUES ($1) RETURNING id::text, created_at`
	return s.db.QueryRow(ctx, query, announcement.Text).Scan(&announcement.ID, &announcement.CreatedAt)
}

func (s *Store) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	rows, err := s.db.Query(ctx, `SELECT id::text, text, created_at FROM announcements ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Text, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (s *Store) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM announcements WHERE id = $1`, id)
}

func (s *Store) SaveFailedNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		query := `
			INSERT INTO failed_notifications (kind, recipients, subject, body, attempts, last_error)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id::text, created_at, updated_at
		`
		return s.db.QueryRow(ctx, query, n.Kind, n.To, n.Subject, n.Body, n.Attempts, n.LastError).
			Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	}

	rowID, ok := parseID(n.ID)
	if !ok {
		return models.ErrRecordNotFound
	}
	query := `
		UPDATE failed_notifications SET attempts = $2, last_error = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return translate(s.db.QueryRow(ctx, query, rowID, n.Attempts, n.LastError).Scan(&n.UpdatedAt))
}

func (s *Store) ListFailedNotifications(ctx context.Context, maxAttempts, limit int) ([]models.Notification, error) {
	query := `
		SELECT id::text, kind, recipients, subject, body, attempts, last_error, created_at, updated_at
		FROM failed_notifications
		WHERE attempts < $1
		ORDER BY created_at
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, query, maxAttempts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.To, &n.Subject, &n.Body, &n.Attempts, &n.LastError, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) DeleteFailedNotification(ctx context.Context, id string) error {
	err := s.deleteByID(ctx, `DELETE FROM failed_notifications WHERE id = $1`, id)
	if err == models.ErrRecordNotFound {
		return nil
	}
	return err
}

func (s *Store) deleteByID(ctx context.Context, query, id string) error {
	rowID, ok := parseID(id)
	if !ok {
		return models.ErrRecordNotFound
	}
	tag, err := s.db.Exec(ctx, query, rowID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}
