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

const readerCollection = "readers"

// ReaderRepository provides document store access for public reader accounts.
type ReaderRepository struct {
	db *database.Connector
}

// NewReaderRepository creates a new instance of ReaderRepository.
func NewReaderRepository(db *database.Connector) *ReaderRepository {
	return &ReaderRepository{db: db}
}

func (r *ReaderRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, readerCollection)
}

// Upsert syncs a reader keyed by the identity provider id, returning the
// stored document. $setOnInsert keeps a concurrent first sync from creating
// duplicates.
func (r *ReaderRepository) Upsert(ctx context.Context, clerkID, email string) (*models.Reader, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{"email": email, "updatedAt": now},
		"$setOnInsert": bson.M{
			"_id":           uuid.NewString(),
			"savedArticles": []string{},
			"createdAt":     now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var reader models.Reader
	if err := coll.FindOneAndUpdate(ctx, bson.M{"clerkId": clerkID}, update, opts).Decode(&reader); err != nil {
		return nil, fmt.Errorf("sync reader: %w", err)
	}
	return &reader, nil
}

// FindByClerkID returns a reader by identity provider id.
func (r *ReaderRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.Reader, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var reader models.Reader
	if err := coll.FindOne(ctx, bson.M{"clerkId": clerkID}).Decode(&reader); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find reader: %w", err)
	}
	return &reader, nil
}

// AddSavedArticle adds an article id to the reader's saved set and returns
// the updated document. $addToSet keeps the set deduplicated under
// concurrent toggles.
func (r *ReaderRepository) AddSavedArticle(ctx context.Context, clerkID, articleID string) (*models.Reader, error) {
	update := bson.M{
		"$addToSet": bson.M{"savedArticles": articleID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.updateSaved(ctx, clerkID, update, "save article")
}

// RemoveSavedArticle removes an article id from the reader's saved set and
// returns the updated document.
func (r *ReaderRepository) RemoveSavedArticle(ctx context.Context, clerkID, articleID string) (*models.Reader, error) {
	update := bson.M{
		"$pull": bson.M{"savedArticles": articleID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.updateSaved(ctx, clerkID, update, "unsave article")
}

func (r *ReaderRepository) updateSaved(ctx context.Context, clerkID string, update bson.M, op string) (*models.Reader, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var reader models.Reader
	if err := coll.FindOneAndUpdate(ctx, bson.M{"clerkId": clerkID}, update, opts).Decode(&reader); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &reader, nil
}

// Count returns the total number of readers.
func (r *ReaderRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count readers: %w", err)
	}
	return total, nil
}
