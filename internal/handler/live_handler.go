package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/gnews"
	"github.com/newsphere/newsphere-api/internal/service"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// LiveHandler proxies the upstream news aggregator.
type LiveHandler struct {
	live *service.LiveService
}

// NewLiveHandler constructs LiveHandler.
func NewLiveHandler(live *service.LiveService) *LiveHandler {
	return &LiveHandler{live: live}
}

// Headlines returns top headlines for an optional category.
func (h *LiveHandler) Headlines(c *gin.Context) {
	articles, err := h.live.Headlines(c.Request.Context(), gnews.HeadlinesQuery{
		Category: c.Query("category"),
		Country:  c.Query("country"),
		Max:      parseMax(c.Query("max")),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, articles, nil)
}

// Search runs a full-text query against the upstream.
func (h *LiveHandler) Search(c *gin.Context) {
	articles, err := h.live.Search(c.Request.Context(), gnews.SearchQuery{
		Q:       c.Query("q"),
		Country: c.Query("country"),
		Max:     parseMax(c.Query("max")),
		From:    c.Query("from"),
		To:      c.Query("to"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, articles, nil)
}

func parseMax(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
