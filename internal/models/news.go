package models

import "time"

// NewsCategory is the fixed category enum for platform articles.
type NewsCategory string

const (
	CategoryTechnology NewsCategory = "Technology"
	CategoryBusiness   NewsCategory = "Business"
	CategoryScience    NewsCategory = "Science"
	CategoryWorld      NewsCategory = "World"
	CategoryHealth     NewsCategory = "Health"
)

// NewsCategories lists every valid category in display order.
var NewsCategories = []NewsCategory{
	CategoryTechnology,
	CategoryBusiness,
	CategoryScience,
	CategoryWorld,
	CategoryHealth,
}

// IsValidCategory reports whether raw names a known category.
func IsValidCategory(raw string) bool {
	for _, c := range NewsCategories {
		if string(c) == raw {
			return true
		}
	}
	return false
}

// NewsArticle is a platform news document.
type NewsArticle struct {
	ID          string       `bson:"_id" json:"id"`
	Title       string       `bson:"title" json:"title"`
	Slug        string       `bson:"slug" json:"slug"`
	Summary     string       `bson:"summary" json:"summary"`
	Content     string       `bson:"content,omitempty" json:"content,omitempty"`
	Category    NewsCategory `bson:"category" json:"category"`
	Source      string       `bson:"source,omitempty" json:"source,omitempty"`
	CoverImage  string       `bson:"coverImage" json:"coverImage"`
	PublishedAt time.Time    `bson:"publishedAt" json:"publishedAt"`
	IsFeatured  bool         `bson:"isFeatured" json:"isFeatured"`
	IsTrending  bool         `bson:"isTrending" json:"isTrending"`
	Views       int64        `bson:"views" json:"views"`
	Tags        []string     `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// NewsFilter captures list criteria for news queries.
type NewsFilter struct {
	Category string
	Featured *bool
	Trending *bool
	Search   string
	Page     int64
	Limit    int64
}

// CreateNewsRequest is the admin create payload.
type CreateNewsRequest struct {
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Source      string     `json:"source"`
	CoverImage  string     `json:"coverImage"`
	PublishedAt *time.Time `json:"publishedAt"`
	Tags        []string   `json:"tags"`
}

// UpdateNewsRequest carries partial updates; nil fields are left untouched.
type UpdateNewsRequest struct {
	Title       *string    `json:"title"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content"`
	Category    *string    `json:"category"`
	Source      *string    `json:"source"`
	CoverImage  *string    `json:"coverImage"`
	PublishedAt *time.Time `json:"publishedAt"`
	Tags        []string   `json:"tags"`
}

// NewsStats aggregates counters for the admin dashboard.
type NewsStats struct {
	Total      int64            `json:"total"`
	TotalViews int64            `json:"totalViews"`
	Featured   int64            `json:"featured"`
	Trending   int64            `json:"trending"`
	ByCategory map[string]int64 `json:"byCategory"`
}
