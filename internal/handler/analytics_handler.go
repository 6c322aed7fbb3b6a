package handler

import (
	"net/http"
	"time"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/analytics", h.GetAnalytics)
}

// GetAnalytics returns the KPI and chart projection for a period. CUSTOM
// periods take explicit from/to dates (YYYY-MM-DD)
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	period := c.DefaultQuery("period", "LAST_30_DAYS")

	var from, to time.Time
	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid from date: "+err.Error()))
			return
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid to date: "+err.Error()))
			return
		}
		// Include the whole end day
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	report, err := h.analyticsService.Snapshot(c.Request.Context(), period, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
