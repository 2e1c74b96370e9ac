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

const blogCollection = "blogs"

// BlogRepository provides document store access for blog posts.
type BlogRepository struct {
	db *database.Connector
}

// NewBlogRepository creates a new instance of BlogRepository.
func NewBlogRepository(db *database.Connector) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, blogCollection)
}

// Insert stores a new post, assigning id and timestamps.
func (r *BlogRepository) Insert(ctx context.Context, blog *models.Blog) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = now
	}
	blog.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, blog); err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

// FindByID returns a post by identifier.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*models.Blog, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var blog models.Blog
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&blog); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return &blog, nil
}

// FindBySlug returns a post by slug.
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var blog models.Blog
	if err := coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&blog); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return &blog, nil
}

// List returns posts for the filter window with the total count.
func (r *BlogRepository) List(ctx context.Context, filter models.BlogFilter) ([]models.Blog, int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	if filter.Search != "" {
		query["title"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}

	page, limit := clampPage(filter.Page, filter.Limit)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list blogs: %w", err)
	}
	blogs := make([]models.Blog, 0)
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, fmt.Errorf("decode blog list: %w", err)
	}

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count blogs: %w", err)
	}

	return blogs, total, nil
}

// Update replaces the mutable fields of a post.
func (r *BlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	blog.UpdatedAt = time.Now().UTC()
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": blog.ID}, blog)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus persists the publish status.
func (r *BlogRepository) SetStatus(ctx context.Context, id string, status models.BlogStatus) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set blog status: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementViews atomically bumps the view counter.
func (r *BlogRepository) IncrementViews(ctx context.Context, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}); err != nil {
		return fmt.Errorf("increment blog views: %w", err)
	}
	return nil
}

// Delete removes a post.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Count returns the total number of posts.
func (r *BlogRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return total, nil
}
