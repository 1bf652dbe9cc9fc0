package services

import (
	"errors"
	"fmt"

	"clothing-store/models"
)

// notFoundOr turns a repository miss into a NotFound error with message and
// wraps anything else with op.
func notFoundOr(err error, message, op string) error {
	if errors.Is(err, models.ErrRecordNotFound) {
		return models.ErrNotFound(message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
