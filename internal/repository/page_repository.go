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

const pageCollection = "pages"

// PageRepository provides document store access for CMS pages.
type PageRepository struct {
	db *database.Connector
}

// NewPageRepository creates a new instance of PageRepository.
func NewPageRepository(db *database.Connector) *PageRepository {
	return &PageRepository{db: db}
}

func (r *PageRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, pageCollection)
}

// Insert stores a new page, assigning id and timestamps.
func (r *PageRepository) Insert(ctx context.Context, page *models.Page) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	if page.Sections == nil {
		page.Sections = []models.PageSection{}
	}
	now := time.Now().UTC()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	page.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, page); err != nil {
		return fmt.Errorf("insert page: %w", err)
	}
	return nil
}

// FindByID returns a page by identifier.
func (r *PageRepository) FindByID(ctx context.Context, id string) (*models.Page, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var page models.Page
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&page); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return &page, nil
}

// FindBySlug returns a page by slug.
func (r *PageRepository) FindBySlug(ctx context.Context, slug string) (*models.Page, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var page models.Page
	if err := coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&page); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	return &page, nil
}

// List returns every page ordered by title.
func (r *PageRepository) List(ctx context.Context, publishedOnly bool) ([]models.Page, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if publishedOnly {
		query["isPublished"] = true
	}

	cursor, err := coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	pages := make([]models.Page, 0)
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, fmt.Errorf("decode page list: %w", err)
	}
	return pages, nil
}

// Update replaces the mutable fields of a page.
func (r *PageRepository) Update(ctx context.Context, page *models.Page) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	page.UpdatedAt = time.Now().UTC()
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": page.ID}, page)
	if err != nil {
		return fmt.Errorf("update page: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a page.
func (r *PageRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpsertDefault seeds a system page by slug. The upsert closes the
// concurrent first-read seeding window: $setOnInsert only writes when the
// slug is absent.
func (r *PageRepository) UpsertDefault(ctx context.Context, page models.Page) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if page.ID == "" {
		page.ID = uuid.NewString()
	}
	if page.Sections == nil {
		page.Sections = []models.PageSection{}
	}

	update := bson.M{"$setOnInsert": bson.M{
		"_id":          page.ID,
		"title":        page.Title,
		"content":      page.Content,
		"sections":     page.Sections,
		"isPublished":  page.IsPublished,
		"isSystemPage": page.IsSystemPage,
		"createdAt":    now,
		"updatedAt":    now,
	}}

	opts := options.Update().SetUpsert(true)
	if _, err := coll.UpdateOne(ctx, bson.M{"slug": page.Slug}, update, opts); err != nil {
		return fmt.Errorf("seed page %q: %w", page.Slug, err)
	}
	return nil
}

// Count returns the total number of pages.
func (r *PageRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return total, nil
}
