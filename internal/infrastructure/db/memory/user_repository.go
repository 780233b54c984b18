// Package memory implements the repositories on process-resident maps.
// It is the default store: nothing survives a restart, and beyond the
// per-operation locking needed for Go's concurrent HTTP server there is no
// cross-request coordination.
package memory

import (
	"context"
	"sync"

	"github.com/nusapress/articles-api/internal/core/domain"
)

// UserRepository is an in-memory ports.UserRepository with uniqueness
// indexes on username and email.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[int64]*domain.User
	byEmail    map[string]int64
	byUsername map[string]int64
	nextID     int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[int64]*domain.User),
		byEmail:    make(map[string]int64),
		byUsername: make(map[string]int64),
		nextID:     1,
	}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return nil, domain.ErrUserExists
	}
	if _, taken := r.byUsername[user.Username]; taken {
		return nil, domain.ErrUserExists
	}

	clone := cloneUser(user)
	clone.ID = r.nextID
	r.nextID++

	r.byID[clone.ID] = clone
	r.byEmail[clone.Email] = clone.ID
	r.byUsername[clone.Username] = clone.ID

	return cloneUser(clone), nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}
