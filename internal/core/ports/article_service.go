package ports

import (
	"context"

	"github.com/nusapress/articles-api/internal/core/domain"
)

// CreateArticleInput carries the data for a new article. The actor becomes
// the owner and the article is published immediately.
type CreateArticleInput struct {
	Title   string
	Content string
}

// UpdateArticleInput is a partial patch: nil fields keep their current
// value.
type UpdateArticleInput struct {
	Title   *string
	Content *string
	Status  *domain.ArticleStatus
}

// ArticleService defines article use-cases. Every mutation decides access
// itself; handlers never duplicate ownership or role checks.
type ArticleService interface {
	// ListPublished returns published articles, newest first.
	ListPublished(ctx context.Context) ([]*domain.Article, error)
	// GetPublished returns a published article; drafts and missing ids are
	// both domain.ErrArticleNotFound.
	GetPublished(ctx context.Context, id int64) (*domain.Article, error)
	Create(ctx context.Context, actor *domain.User, in CreateArticleInput) (*domain.Article, error)
	Update(ctx context.Context, actor *domain.User, id int64, in UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	// ListAll returns every article regardless of status; admin only.
	ListAll(ctx context.Context, actor *domain.User) ([]*domain.Article, error)
}
