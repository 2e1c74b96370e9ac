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

const mediaCollection = "media"

// MediaRepository provides document store access for registered media URLs.
type MediaRepository struct {
	db *database.Connector
}

// NewMediaRepository creates a new instance of MediaRepository.
func NewMediaRepository(db *database.Connector) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, mediaCollection)
}

// Insert registers a new media URL.
func (r *MediaRepository) Insert(ctx context.Context, media *models.Media) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	media.CreatedAt = now
	media.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, media); err != nil {
		return fmt.Errorf("insert media: %w", err)
	}
	return nil
}

// FindByID returns a media record by identifier.
func (r *MediaRepository) FindByID(ctx context.Context, id string) (*models.Media, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var media models.Media
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&media); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return &media, nil
}

// List returns a page of media records matching the filter, newest first.
func (r *MediaRepository) List(ctx context.Context, filter models.MediaFilter) ([]models.Media, int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{}
	if filter.Folder != "" {
		query["folder"] = filter.Folder
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	page, limit := clampPage(filter.Page, filter.Limit)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	items := make([]models.Media, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode media list: %w", err)
	}
	return items, total, nil
}

// Folders aggregates distinct folder names with their record counts.
func (r *MediaRepository) Folders(ctx context.Context) ([]models.FolderSummary, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$folder", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate media folders: %w", err)
	}
	folders := make([]models.FolderSummary, 0)
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("decode folder summaries: %w", err)
	}
	return folders, nil
}

// Update replaces the mutable fields of a media record.
func (r *MediaRepository) Update(ctx context.Context, media *models.Media) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	media.UpdatedAt = time.Now().UTC()
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": media.ID}, media)
	if err != nil {
		return fmt.Errorf("update media: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a media record.
func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteMany removes every record whose id appears in ids and returns the
// number actually removed.
func (r *MediaRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("bulk delete media: %w", err)
	}
	return result.DeletedCount, nil
}

// Count returns the total number of media records.
func (r *MediaRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return total, nil
}
