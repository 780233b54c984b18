package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/ports"
)

// ArticleRepository is an in-memory ports.ArticleRepository. Operations are
// individually locked; there is deliberately no versioning, so two
// concurrent read-modify-write sequences on one article interleave
// last-write-wins.
type ArticleRepository struct {
	mu       sync.RWMutex
	articles map[int64]*domain.Article
	nextID   int64
}

func NewArticleRepository() *ArticleRepository {
	return &ArticleRepository{
		articles: make(map[int64]*domain.Article),
		nextID:   1,
	}
}

func cloneArticle(a *domain.Article) *domain.Article {
	clone := *a
	if a.OwnerID != nil {
		owner := *a.OwnerID
		clone.OwnerID = &owner
	}
	return &clone
}

func (r *ArticleRepository) Insert(_ context.Context, article *domain.Article) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneArticle(article)
	clone.ID = r.nextID
	r.nextID++
	r.articles[clone.ID] = clone

	return cloneArticle(clone), nil
}

func (r *ArticleRepository) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (r *ArticleRepository) List(_ context.Context, filter ports.ArticleListFilter) ([]*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, cloneArticle(a))
	}

	// Newest first, id as tiebreak for articles created in the same instant.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *ArticleRepository) Update(_ context.Context, article *domain.Article) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[article.ID]; !ok {
		return nil, domain.ErrArticleNotFound
	}
	r.articles[article.ID] = cloneArticle(article)
	return cloneArticle(article), nil
}

func (r *ArticleRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.articles, id)
	return nil
}
