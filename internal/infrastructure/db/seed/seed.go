// Package seed loads the demo accounts and articles into an empty store so
// a fresh process is immediately usable.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/ports"
)

// Demo inserts the well-known test users and two starter articles. It is
// idempotent: when the admin account already exists the store is assumed
// seeded and nothing is written.
func Demo(ctx context.Context, users ports.UserRepository, articles ports.ArticleRepository, log zerolog.Logger) error {
	if _, err := users.FindByEmail(ctx, "admin@test.com"); err == nil {
		log.Debug().Msg("demo data already present, skipping seed")
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed: check admin account: %w", err)
	}

	now := time.Now().UTC()

	admin, err := createUser(ctx, users, "admin", "admin@test.com", "admin123", domain.RoleAdmin, now)
	if err != nil {
		return err
	}
	member, err := createUser(ctx, users, "member1", "member1@test.com", "member123", domain.RoleMember, now)
	if err != nil {
		return err
	}

	// Article 1 is system-owned: only admins may mutate it.
	starter := []*domain.Article{
		{
			Title:     "First public article",
			Content:   "This article is readable by everyone, no login needed.",
			OwnerID:   nil,
			Status:    domain.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Title:     "An article from a member",
			Content:   "This article was created by a member after logging in.",
			OwnerID:   &member.ID,
			Status:    domain.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, a := range starter {
		if _, err := articles.Insert(ctx, a); err != nil {
			return fmt.Errorf("seed: insert article %q: %w", a.Title, err)
		}
	}

	log.Info().
		Int64("admin_id", admin.ID).
		Int64("member_id", member.ID).
		Msg("demo data seeded")
	return nil
}

func createUser(ctx context.Context, users ports.UserRepository, username, email, password string, role domain.Role, now time.Time) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password for %s: %w", username, err)
	}

	user, err := users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("seed: create %s: %w", username, err)
	}
	return user, nil
}
