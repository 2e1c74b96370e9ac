package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/pkg/database"
)

const newsCollection = "news"

// NewsRepository provides document store access for news articles.
type NewsRepository struct {
	db *database.Connector
}

// NewNewsRepository creates a new instance of NewsRepository.
func NewNewsRepository(db *database.Connector) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, newsCollection)
}

// Insert stores a new article, assigning id and timestamps.
func (r *NewsRepository) Insert(ctx context.Context, article *models.NewsArticle) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, article); err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

// FindByID returns an article by identifier.
func (r *NewsRepository) FindByID(ctx context.Context, id string) (*models.NewsArticle, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var article models.NewsArticle
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&article); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find news by id: %w", err)
	}
	return &article, nil
}

// FindBySlug returns an article by slug.
func (r *NewsRepository) FindBySlug(ctx context.Context, slug string) (*models.NewsArticle, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var article models.NewsArticle
	if err := coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&article); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find news by slug: %w", err)
	}
	return &article, nil
}

// List returns articles for the filter window with the total count.
func (r *NewsRepository) List(ctx context.Context, filter models.NewsFilter) ([]models.NewsArticle, int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured != nil {
		query["isFeatured"] = *filter.Featured
	}
	if filter.Trending != nil {
		query["isTrending"] = *filter.Trending
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"summary": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	page, limit := clampPage(filter.Page, filter.Limit)

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}
	articles := make([]models.NewsArticle, 0)
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, 0, fmt.Errorf("decode news list: %w", err)
	}

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}

	return articles, total, nil
}

// Update replaces the mutable fields of an article.
func (r *NewsRepository) Update(ctx context.Context, article *models.NewsArticle) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	article.UpdatedAt = time.Now().UTC()
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": article.ID}, article)
	if err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetFlag persists a single boolean flag.
func (r *NewsRepository) SetFlag(ctx context.Context, id, field string, value bool) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{field: value, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set news flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementViews atomically bumps the view counter and returns the new value.
func (r *NewsRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article models.NewsArticle
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&article)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, err
		}
		return 0, fmt.Errorf("increment news views: %w", err)
	}
	return article.Views, nil
}

// Delete removes an article.
func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindByIDs returns articles preserving the order of the given ids.
func (r *NewsRepository) FindByIDs(ctx context.Context, ids []string) ([]models.NewsArticle, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find news by ids: %w", err)
	}
	var fetched []models.NewsArticle
	if err := cursor.All(ctx, &fetched); err != nil {
		return nil, fmt.Errorf("decode news by ids: %w", err)
	}

	byID := make(map[string]models.NewsArticle, len(fetched))
	for _, a := range fetched {
		byID[a.ID] = a
	}
	ordered := make([]models.NewsArticle, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

// Stats aggregates article counters for the dashboard.
func (r *NewsRepository) Stats(ctx context.Context) (*models.NewsStats, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "views", Value: bson.D{{Key: "$sum", Value: "$views"}}},
			{Key: "featured", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{"$isFeatured", 1, 0}}}}}},
			{Key: "trending", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{"$isTrending", 1, 0}}}}}},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate news stats: %w", err)
	}

	var rows []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
		Views    int64  `bson:"views"`
		Featured int64  `bson:"featured"`
		Trending int64  `bson:"trending"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode news stats: %w", err)
	}

	stats := &models.NewsStats{ByCategory: make(map[string]int64)}
	for _, row := range rows {
		stats.Total += row.Count
		stats.TotalViews += row.Views
		stats.Featured += row.Featured
		stats.Trending += row.Trending
		stats.ByCategory[row.Category] = row.Count
	}
	return stats, nil
}
