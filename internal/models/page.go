package models

import "time"

// PageSection is an ordered content block inside a page.
type PageSection struct {
	ID      string `bson:"id" json:"id"`
	Type    string `bson:"type" json:"type"`
	Order   int    `bson:"order" json:"order"`
	Content string `bson:"content,omitempty" json:"content,omitempty"`
}

// Page is a CMS-managed static page. System pages cannot be deleted.
type Page struct {
	ID           string        `bson:"_id" json:"id"`
	Title        string        `bson:"title" json:"title"`
	Slug         string        `bson:"slug" json:"slug"`
	Content      string        `bson:"content,omitempty" json:"content,omitempty"`
	Sections     []PageSection `bson:"sections" json:"sections"`
	IsPublished  bool          `bson:"isPublished" json:"isPublished"`
	IsSystemPage bool          `bson:"isSystemPage" json:"isSystemPage"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CreatePageRequest is the admin create payload.
type CreatePageRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished bool   `json:"isPublished"`
}

// UpdatePageRequest carries partial updates.
type UpdatePageRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"isPublished"`
}

// SectionRequest adds or updates a page section.
type SectionRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Order   *int   `json:"order"`
}
