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

const settingsCollection = "settings"

// SettingsRepository provides document store access for the singleton
// settings documents. Each document is keyed by a sentinel value so reads
// can seed defaults with an upsert instead of check-then-insert.
type SettingsRepository struct {
	db *database.Connector
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *database.Connector) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, settingsCollection)
}

// GetSiteSettings returns the site settings singleton, seeding defaults on
// first read.
func (r *SettingsRepository) GetSiteSettings(ctx context.Context) (*models.SiteSettings, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$setOnInsert": bson.M{
		"_id":       uuid.NewString(),
		"siteName":  "NewSphere",
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.SiteSettings
	filter := bson.M{"key": models.SettingsKeySite}
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&settings); err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	return &settings, nil
}

// UpdateSiteSettings merge-assigns provided fields onto the singleton.
func (r *SettingsRepository) UpdateSiteSettings(ctx context.Context, fields bson.M) (*models.SiteSettings, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	fields["updatedAt"] = time.Now().UTC()
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var settings models.SiteSettings
	filter := bson.M{"key": models.SettingsKeySite}
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&settings); err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}
	return &settings, nil
}

// GetHomeContent returns the home content singleton, seeding defaults on
// first read.
func (r *SettingsRepository) GetHomeContent(ctx context.Context) (*models.HomeContent, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$setOnInsert": bson.M{
		"_id":          uuid.NewString(),
		"heroTitle":    "Stay informed",
		"showTrending": true,
		"updatedAt":    time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var content models.HomeContent
	filter := bson.M{"key": models.SettingsKeyHome}
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&content); err != nil {
		return nil, fmt.Errorf("get home content: %w", err)
	}
	return &content, nil
}

// UpdateHomeContent merge-assigns provided fields onto the singleton.
func (r *SettingsRepository) UpdateHomeContent(ctx context.Context, fields bson.M) (*models.HomeContent, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	fields["updatedAt"] = time.Now().UTC()
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"_id": uuid.NewString()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var content models.HomeContent
	filter := bson.M{"key": models.SettingsKeyHome}
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&content); err != nil {
		return nil, fmt.Errorf("update home content: %w", err)
	}
	return &content, nil
}
