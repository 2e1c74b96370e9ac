package models

import "time"

// Category is a navigation category. Name uniqueness is case-insensitive,
// enforced through the stored nameLower key. The five system categories
// mirror the news enum and cannot be deleted.
type Category struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	NameLower string    `bson:"nameLower" json:"-"`
	Slug      string    `bson:"slug" json:"slug"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	IsSystem  bool      `bson:"isSystem" json:"isSystem"`
	Order     int       `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateCategoryRequest is the admin create payload.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryOrder is one entry of a bulk reorder request.
type CategoryOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
