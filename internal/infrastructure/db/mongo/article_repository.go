package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nusapress/articles-api/internal/core/domain"
	"github.com/nusapress/articles-api/internal/core/ports"
)

const articlesCollection = "articles"

type ArticleRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{db: db, coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID        int64  `bson:"_id"`
	Title     string `bson:"title"`
	Content   string `bson:"content"`
	OwnerID   *int64 `bson:"owner_id"`
	Status    string `bson:"status"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func fromDomain(a *domain.Article) mongoArticle {
	return mongoArticle{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		OwnerID:   a.OwnerID,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Unix(),
		UpdatedAt: a.UpdatedAt.Unix(),
	}
}

func (ma mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:        ma.ID,
		Title:     ma.Title,
		Content:   ma.Content,
		OwnerID:   ma.OwnerID,
		Status:    domain.ArticleStatus(ma.Status),
		CreatedAt: unixToTime(ma.CreatedAt),
		UpdatedAt: unixToTime(ma.UpdatedAt),
	}
}

func (r *ArticleRepository) Insert(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	id, err := nextID(ctx, r.db, articlesCollection)
	if err != nil {
		return nil, err
	}

	doc := fromDomain(article)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	var ma mongoArticle
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) List(ctx context.Context, filter ports.ArticleListFilter) ([]*domain.Article, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Article
	for cursor.Next(ctx) {
		var ma mongoArticle
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	doc := fromDomain(article)

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}
