package domain

import (
	"errors"
	"time"
)

// ArticleStatus represents the publication state of an article.
type ArticleStatus string

const (
	StatusPublished ArticleStatus = "published"
	StatusDraft     ArticleStatus = "draft"
)

// Valid reports whether the status is one of the known states.
func (s ArticleStatus) Valid() bool {
	return s == StatusPublished || s == StatusDraft
}

var ErrArticleNotFound = errors.New("article not found")

// Article is the core aggregate. OwnerID is nil for system-owned articles,
// which only admins may mutate.
type Article struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	OwnerID   *int64        `json:"ownerId"`
	Status    ArticleStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// OwnedBy reports whether the article belongs to the given user id.
// System-owned articles (nil OwnerID) belong to nobody.
func (a *Article) OwnedBy(userID int64) bool {
	return a.OwnerID != nil && *a.OwnerID == userID
}
