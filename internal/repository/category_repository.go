package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/pkg/database"
)

const categoryCollection = "categories"

// CategoryRepository provides document store access for navigation categories.
type CategoryRepository struct {
	db *database.Connector
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *database.Connector) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, categoryCollection)
}

// Insert stores a new category, assigning id, nameLower and timestamps.
func (r *CategoryRepository) Insert(ctx context.Context, category *models.Category) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	category.NameLower = strings.ToLower(category.Name)
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// FindByID returns a category by identifier.
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return &category, nil
}

// FindByName returns a category by name, matched case-insensitively
// through the stored nameLower key.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var category models.Category
	filter := bson.M{"nameLower": strings.ToLower(name)}
	if err := coll.FindOne(ctx, filter).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return &category, nil
}

// List returns categories ordered by their display order, then name.
func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if activeOnly {
		query["isActive"] = true
	}

	sort := bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}}
	cursor, err := coll.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode category list: %w", err)
	}
	return categories, nil
}

// Update replaces the mutable fields of a category.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	category.NameLower = strings.ToLower(category.Name)
	category.UpdatedAt = time.Now().UTC()
	result, err := coll.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetActive toggles the isActive flag and returns the stored value.
func (r *CategoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now().UTC()}}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set category active: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Reorder applies a bulk display-order update in one round trip.
func (r *CategoryRepository) Reorder(ctx context.Context, orders []models.CategoryOrder) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(orders))
	for _, o := range orders {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": o.ID}).
			SetUpdate(bson.M{"$set": bson.M{"order": o.Order, "updatedAt": now}}))
	}

	if _, err := coll.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("reorder categories: %w", err)
	}
	return nil
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpsertDefault seeds a system category keyed by nameLower. $setOnInsert
// keeps concurrent first reads from inserting duplicates.
func (r *CategoryRepository) UpsertDefault(ctx context.Context, category models.Category) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	update := bson.M{"$setOnInsert": bson.M{
		"_id":       category.ID,
		"name":      category.Name,
		"slug":      category.Slug,
		"isActive":  true,
		"isSystem":  true,
		"order":     category.Order,
		"createdAt": now,
		"updatedAt": now,
	}}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"nameLower": strings.ToLower(category.Name)}
	if _, err := coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("seed category %q: %w", category.Name, err)
	}
	return nil
}

// Count returns the total number of categories.
func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}
