package ports

import (
	"context"

	"github.com/nusapress/articles-api/internal/core/domain"
)

// UserRepository defines persistence operations for registered users.
// Implementations must enforce username and email uniqueness and return
// domain.ErrUserExists on violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
