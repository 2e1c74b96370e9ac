package models

import "time"

// BlogStatus drives public visibility of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// Blog is an editorial post with a unique slug.
type Blog struct {
	ID        string     `bson:"_id" json:"id"`
	Title     string     `bson:"title" json:"title"`
	Slug      string     `bson:"slug" json:"slug"`
	Content   string     `bson:"content" json:"content"`
	Excerpt   string     `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Author    string     `bson:"author,omitempty" json:"author,omitempty"`
	Status    BlogStatus `bson:"status" json:"status"`
	Tags      []string   `bson:"tags,omitempty" json:"tags,omitempty"`
	Views     int64      `bson:"views" json:"views"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// BlogFilter captures list criteria for blog queries.
type BlogFilter struct {
	Status string
	Search string
	Tag    string
	Page   int64
	Limit  int64
}

// CreateBlogRequest is the submit payload.
type CreateBlogRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Excerpt string   `json:"excerpt"`
	Author  string   `json:"author"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}

// UpdateBlogRequest carries partial updates; a title change regenerates the
// slug.
type UpdateBlogRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Excerpt *string  `json:"excerpt"`
	Author  *string  `json:"author"`
	Status  *string  `json:"status"`
	Tags    []string `json:"tags"`
}
