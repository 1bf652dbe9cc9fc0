package services

import (
	"context"
	"fmt"

	"clothing-store/models"
	"clothing-store/repositories"
)

type UserPage struct {
	Users []models.PublicUser   `json:"users"`
	Meta  models.PaginationMeta `json:"meta"`
}

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// List never exposes password hashes or reset tokens.
func (s *UserService) List(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit = repositories.Normalize(page, limit, maxPageSize)
	users, total, err := s.users.ListUsers(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return &UserPage{Users: public, Meta: models.NewPaginationMeta(page, limit, total)}, nil
}
