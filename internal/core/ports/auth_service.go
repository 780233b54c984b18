package ports

import (
	"context"
	"time"

	"github.com/nusapress/articles-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Role defaults to member when empty.
	Role domain.Role
}

// AuthResult is returned by both registration and login: the account plus
// a freshly minted bearer token.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService defines registration and login use-cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
