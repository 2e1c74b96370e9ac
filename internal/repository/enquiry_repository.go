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

const enquiryCollection = "enquiries"

// EnquiryRepository provides document store access for contact enquiries.
type EnquiryRepository struct {
	db *database.Connector
}

// NewEnquiryRepository creates a new instance of EnquiryRepository.
func NewEnquiryRepository(db *database.Connector) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

func (r *EnquiryRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, enquiryCollection)
}

// Insert stores a new enquiry in status "new".
func (r *EnquiryRepository) Insert(ctx context.Context, enquiry *models.Enquiry) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	if enquiry.Status == "" {
		enquiry.Status = models.EnquiryNew
	}
	now := time.Now().UTC()
	enquiry.CreatedAt = now
	enquiry.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, enquiry); err != nil {
		return fmt.Errorf("insert enquiry: %w", err)
	}
	return nil
}

// FindByID returns an enquiry by identifier.
func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (*models.Enquiry, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var enquiry models.Enquiry
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&enquiry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find enquiry by id: %w", err)
	}
	return &enquiry, nil
}

// List returns a page of enquiries matching the filter, newest first.
func (r *EnquiryRepository) List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Important != nil {
		query["isImportant"] = *filter.Important
	}
	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"subject": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	page, limit := clampPage(filter.Page, filter.Limit)

	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count enquiries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list enquiries: %w", err)
	}
	enquiries := make([]models.Enquiry, 0)
	if err := cursor.All(ctx, &enquiries); err != nil {
		return nil, 0, fmt.Errorf("decode enquiry list: %w", err)
	}
	return enquiries, total, nil
}

// SetStatus moves an enquiry to the given status.
func (r *EnquiryRepository) SetStatus(ctx context.Context, id string, status models.EnquiryStatus) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set enquiry status: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetImportant toggles the important flag.
func (r *EnquiryRepository) SetImportant(ctx context.Context, id string, important bool) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"isImportant": important, "updatedAt": time.Now().UTC()}}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set enquiry important: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetReply records the admin response and moves the enquiry to "replied".
func (r *EnquiryRepository) SetReply(ctx context.Context, id string, reply models.EnquiryReply) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"reply":     reply,
		"status":    models.EnquiryReplied,
		"updatedAt": time.Now().UTC(),
	}}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set enquiry reply: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an enquiry.
func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteMany removes every enquiry whose id appears in ids and returns
// the number actually removed.
func (r *EnquiryRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("bulk delete enquiries: %w", err)
	}
	return result.DeletedCount, nil
}

// Stats aggregates per-status and important counts in one pass.
func (r *EnquiryRepository) Stats(ctx context.Context) (*models.EnquiryStats, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"new": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.EnquiryNew}}, 1, 0},
			}},
			"read": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.EnquiryRead}}, 1, 0},
			}},
			"replied": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.EnquiryReplied}}, 1, 0},
			}},
			"archived": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", models.EnquiryArchived}}, 1, 0},
			}},
			"important": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$isImportant", 1, 0},
			}},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate enquiry stats: %w", err)
	}
	var rows []struct {
		Total     int64 `bson:"total"`
		New       int64 `bson:"new"`
		Read      int64 `bson:"read"`
		Replied   int64 `bson:"replied"`
		Archived  int64 `bson:"archived"`
		Important int64 `bson:"important"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode enquiry stats: %w", err)
	}

	stats := &models.EnquiryStats{}
	if len(rows) > 0 {
		stats.Total = rows[0].Total
		stats.New = rows[0].New
		stats.Read = rows[0].Read
		stats.Replied = rows[0].Replied
		stats.Archived = rows[0].Archived
		stats.Important = rows[0].Important
	}
	return stats, nil
}
