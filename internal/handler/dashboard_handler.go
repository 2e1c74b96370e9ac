package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/newsphere/newsphere-api/internal/service"
	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// DashboardHandler exposes the admin overview and its exports.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats returns the aggregated overview.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Export streams the overview as CSV or PDF depending on ?format.
func (h *DashboardHandler) Export(c *gin.Context) {
	stamp := time.Now().UTC().Format("2006-01-02")

	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		data, err := h.dashboard.ExportPDF(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=overview-%s.pdf", stamp))
		c.Data(http.StatusOK, "application/pdf", data)
	case "csv":
		data, err := h.dashboard.ExportCSV(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=overview-%s.csv", stamp))
		c.Data(http.StatusOK, "text/csv", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown export format"))
	}
}
