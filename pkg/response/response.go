package response

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Envelope is the uniform response contract: success:false responses never
// carry data.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes a paginated list window.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes pages as ceil(total/limit).
func NewPagination(page, limit, total int64) *Pagination {
	if limit < 1 {
		limit = 1
	}
	pages := (total + limit - 1) / limit
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Skip returns the list offset for the window.
func (p *Pagination) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// ParsePage extracts page/limit from query values, defaulting and clamping
// them to sane bounds.
func ParsePage(values url.Values) (page, limit int64) {
	page = parseInt(values.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	limit = parseInt(values.Get("limit"), DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func parseInt(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// JSON sends a success response with optional pagination metadata.
func JSON(c *gin.Context, status int, data interface{}, pagination *Pagination) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Success: true, Data: data, Pagination: pagination})
}

// Message sends a success response with a human-readable message describing
// the resulting state.
func Message(c *gin.Context, status int, data interface{}, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Error sends an error response converting the error to the common envelope.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{Success: false, Error: appErr.Message, Errors: appErr.Details})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Write renders an envelope on a plain http.ResponseWriter. The one-shot
// function deployment shape has no gin context, so the dispatcher writes
// through here.
func Write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// WriteError renders an error envelope on a plain http.ResponseWriter.
func WriteError(w http.ResponseWriter, err error) {
	appErr := appErrors.FromError(err)
	Write(w, appErr.Status, Envelope{Success: false, Error: appErr.Message, Errors: appErr.Details})
}
