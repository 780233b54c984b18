package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nusapress/articles-api/internal/api/metrics"
	"github.com/nusapress/articles-api/internal/core/domain"
)

const (
	listingKey = "articles:published"
	listingTTL = time.Minute
)

// ListingCache is a Redis read-through cache for the published-article
// listing. Every article write invalidates it.
type ListingCache struct {
	client *redis.Client
}

// NewListingCache wraps the given Redis client.
func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

func (c *ListingCache) Get(ctx context.Context) ([]*domain.Article, bool, error) {
	raw, err := c.client.Get(ctx, listingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ListingCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("listing cache get: %w", err)
	}

	var articles []*domain.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		metrics.ListingCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}

	metrics.ListingCacheTotal.WithLabelValues("hit").Inc()
	return articles, true, nil
}

func (c *ListingCache) Set(ctx context.Context, articles []*domain.Article) error {
	raw, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("listing cache marshal: %w", err)
	}
	return c.client.Set(ctx, listingKey, raw, listingTTL).Err()
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listingKey).Err()
}
