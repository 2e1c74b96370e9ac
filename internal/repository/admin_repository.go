package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/newsphere/newsphere-api/internal/models"
	"github.com/newsphere/newsphere-api/pkg/database"
)

const adminCollection = "admins"

// AdminRepository provides document store access for CMS operator accounts.
type AdminRepository struct {
	db *database.Connector
}

// NewAdminRepository creates a new instance of AdminRepository.
func NewAdminRepository(db *database.Connector) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.db.Collection(ctx, adminCollection)
}

// Insert stores a new admin account.
func (r *AdminRepository) Insert(ctx context.Context, admin *models.Admin) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	admin.Email = strings.ToLower(admin.Email)
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// FindByID returns an admin by identifier.
func (r *AdminRepository) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var admin models.Admin
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by id: %w", err)
	}
	return &admin, nil
}

// FindByEmail returns an admin by email. Emails are stored lowercased.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var admin models.Admin
	filter := bson.M{"email": strings.ToLower(email)}
	if err := coll.FindOne(ctx, filter).Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

// Count returns the total number of admin accounts.
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return total, nil
}

// UpdateLastLogin stamps the account's last successful login.
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"lastLogin": at, "updatedAt": time.Now().UTC()}}
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update admin last login: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
