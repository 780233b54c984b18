package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/ports"
)

func TestUserRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewUserRepository()

	a, err := repo.Create(context.Background(), &domain.User{Username: "a", Email: "a@test.com"})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := repo.Create(context.Background(), &domain.User{Username: "b", Email: "b@test.com"})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}
}

func TestUserRepository_Uniqueness(t *testing.T) {
	repo := NewUserRepository()
	if _, err := repo.Create(context.Background(), &domain.User{Username: "a", Email: "a@test.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.Create(context.Background(), &domain.User{Username: "b", Email: "a@test.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate email: expected ErrUserExists, got %v", err)
	}
	if _, err := repo.Create(context.Background(), &domain.User{Username: "a", Email: "b@test.com"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate username: expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_Lookups(t *testing.T) {
	repo := NewUserRepository()
	created, err := repo.Create(context.Background(), &domain.User{Username: "u1", Email: "u1@test.com", Role: domain.RoleMember})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byID, err := repo.FindByID(context.Background(), created.ID)
	if err != nil || byID.Username != "u1" {
		t.Fatalf("FindByID: %+v, %v", byID, err)
	}
	byEmail, err := repo.FindByEmail(context.Background(), "u1@test.com")
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("FindByEmail: %+v, %v", byEmail, err)
	}
	byUsername, err := repo.FindByUsername(context.Background(), "u1")
	if err != nil || byUsername.ID != created.ID {
		t.Fatalf("FindByUsername: %+v, %v", byUsername, err)
	}

	if _, err := repo.FindByID(context.Background(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_ReturnsClones(t *testing.T) {
	repo := NewUserRepository()
	created, err := repo.Create(context.Background(), &domain.User{Username: "u1", Email: "u1@test.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Username = "mutated"
	fresh, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if fresh.Username != "u1" {
		t.Fatalf("caller mutation leaked into the store: %+v", fresh)
	}
}

func TestArticleRepository_CRUD(t *testing.T) {
	repo := NewArticleRepository()
	owner := int64(2)

	created, err := repo.Insert(context.Background(), &domain.Article{
		Title: "t", Content: "c", OwnerID: &owner, Status: domain.StatusPublished,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}

	created.Title = "t2"
	updated, err := repo.Update(context.Background(), created)
	if err != nil || updated.Title != "t2" {
		t.Fatalf("update: %+v, %v", updated, err)
	}

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound after delete, got %v", err)
	}

	if _, err := repo.Update(context.Background(), &domain.Article{ID: 99}); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("update missing: expected ErrArticleNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), 99); !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("delete missing: expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleRepository_ListFilterAndOrder(t *testing.T) {
	repo := NewArticleRepository()
	base := time.Now().UTC()

	for i, a := range []*domain.Article{
		{Title: "oldest", Status: domain.StatusPublished},
		{Title: "draft", Status: domain.StatusDraft},
		{Title: "newest", Status: domain.StatusPublished},
	} {
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := repo.Insert(context.Background(), a); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	published, err := repo.List(context.Background(), ports.ArticleListFilter{Status: domain.StatusPublished})
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 published, got %d", len(published))
	}
	if published[0].Title != "newest" || published[1].Title != "oldest" {
		t.Fatalf("expected newest-first ordering, got %s then %s", published[0].Title, published[1].Title)
	}

	all, err := repo.List(context.Background(), ports.ArticleListFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 in unfiltered listing, got %d", len(all))
	}
}
