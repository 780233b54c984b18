package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/ports"
)

// PublishedCache abstracts the optional read-through cache in front of the
// published-article listing (Redis in production).
type PublishedCache interface {
	// Get returns the cached listing; ok is false on a miss.
	Get(ctx context.Context) (articles []*domain.Article, ok bool, err error)
	Set(ctx context.Context, articles []*domain.Article) error
	Invalidate(ctx context.Context) error
}

// ArticleService implements article use-cases. All access decisions go
// through domain.Authorize; handlers never re-check roles or ownership.
type ArticleService struct {
	articles ports.ArticleRepository
	cache    PublishedCache
	log      zerolog.Logger
}

// NewArticleService builds the service. cache may be nil to disable the
// listing cache entirely.
func NewArticleService(articles ports.ArticleRepository, cache PublishedCache, log zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, cache: cache, log: log}
}

func (s *ArticleService) ListPublished(ctx context.Context) ([]*domain.Article, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("listing cache read failed, falling back to store")
		} else if ok {
			return cached, nil
		}
	}

	articles, err := s.articles.List(ctx, ports.ArticleListFilter{Status: domain.StatusPublished})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, articles); err != nil {
			s.log.Warn().Err(err).Msg("listing cache write failed")
		}
	}
	return articles, nil
}

// GetPublished returns one published article. A draft is as invisible as a
// missing id.
func (s *ArticleService) GetPublished(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != domain.StatusPublished {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

func (s *ArticleService) Create(ctx context.Context, actor *domain.User, in ports.CreateArticleInput) (*domain.Article, error) {
	if err := domain.Authorize(actor, domain.AccessCheck{}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ownerID := actor.ID
	article := &domain.Article{
		Title:     in.Title,
		Content:   in.Content,
		OwnerID:   &ownerID,
		Status:    domain.StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.articles.Insert(ctx, article)
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.log.Info().Int64("article_id", created.ID).Int64("owner_id", ownerID).Msg("article created")
	return created, nil
}

func (s *ArticleService) Update(ctx context.Context, actor *domain.User, id int64, in ports.UpdateArticleInput) (*domain.Article, error) {
	// Login state is decided before the lookup so anonymous callers get a
	// 401 even for missing ids.
	if err := domain.Authorize(actor, domain.AccessCheck{}); err != nil {
		return nil, err
	}

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Authorize(actor, domain.AccessCheck{OwnedResource: true, OwnerID: article.OwnerID}); err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != "" {
		article.Title = *in.Title
	}
	if in.Content != nil && *in.Content != "" {
		article.Content = *in.Content
	}
	if in.Status != nil && in.Status.Valid() {
		article.Status = *in.Status
	}
	article.UpdatedAt = time.Now().UTC()

	updated, err := s.articles.Update(ctx, article)
	if err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	s.log.Info().Int64("article_id", updated.ID).Int64("actor_id", actor.ID).Msg("article updated")
	return updated, nil
}

func (s *ArticleService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := domain.Authorize(actor, domain.AccessCheck{}); err != nil {
		return err
	}

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.Authorize(actor, domain.AccessCheck{OwnedResource: true, OwnerID: article.OwnerID}); err != nil {
		return err
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListing(ctx)
	s.log.Info().Int64("article_id", id).Int64("actor_id", actor.ID).Msg("article deleted")
	return nil
}

// ListAll returns every article, drafts included, straight from the live
// store. Admin only.
func (s *ArticleService) ListAll(ctx context.Context, actor *domain.User) ([]*domain.Article, error) {
	if err := domain.Authorize(actor, domain.AccessCheck{RequiredRole: domain.RoleAdmin}); err != nil {
		return nil, err
	}
	return s.articles.List(ctx, ports.ArticleListFilter{})
}

// invalidateListing drops the cached published listing; cache failures are
// logged and ignored.
func (s *ArticleService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
