package postgres

import (
	"context"
	"time"

	"clothing-store/models"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id::text, user_id, name, email, phone, password, avatar,
	COALESCE(reset_password_token, ''), reset_password_expires, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{Wishlist: []string{}, Cart: []models.CartItem{}}
	err := row.Scan(
		&user.ID,
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Password,
		&user.Avatar,
		&user.ResetPasswordToken,
		&user.ResetPasswordExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, name, email, phone, password, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id::text, created_at, updated_at
	`
	now := time.Now().UTC()
	err := s.db.QueryRow(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.Phone,
		user.Password,
		user.Avatar,
		now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	if user.Wishlist == nil {
		user.Wishlist = []string{}
	}
	if user.Cart == nil {
		user.Cart = []models.CartItem{}
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	rowID, ok := parseID(id)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, rowID))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
}

func (s *Store) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE reset_password_token = $1 AND reset_password_expires > $2`
	return scanUser(s.db.QueryRow(ctx, query, tokenHash, now))
}

func (s *Store) ListUsers(ctx context.Context, page, limit int) ([]models.User, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := s.db.Query(ctx, query, limit, offset(page, limit))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func (s *Store) UpdateUserProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	rowID, ok := parseID(id)
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			avatar = COALESCE($4, avatar),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(s.db.QueryRow(ctx, query, rowID, update.Name, update.Phone, update.Avatar))
}

func (s *Store) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	rowID, ok := parseID(id)
	if !ok {
		return models.ErrRecordNotFound
	}
	query := `
		UPDATE users
		SET password = $2, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, rowID, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}

func (s *Store) SetUserResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	rowID, ok := parseID(id)
	if !ok {
		return models.ErrRecordNotFound
	}
	query := `
		UPDATE users
		SET reset_password_token = $2, reset_password_expires = $3, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := s.db.Exec(ctx, query, rowID, tokenHash, expires)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}
