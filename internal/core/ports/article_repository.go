package ports

import (
	"context"

	"github.com/nusapress/articles-api/internal/core/domain"
)

// ArticleListFilter narrows List results. The zero value lists everything.
type ArticleListFilter struct {
	// Status, when non-empty, restricts results to that publication state.
	Status domain.ArticleStatus
}

// ArticleRepository defines persistence operations for articles, so a real
// backend can be swapped in without touching the authorization logic.
type ArticleRepository interface {
	Insert(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context, filter ArticleListFilter) ([]*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) (*domain.Article, error)
	Delete(ctx context.Context, id int64) error
}
