package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xeralabs/rize-engine/internal/adapters/handler/http/middleware"
	"github.com/xeralabs/rize-engine/internal/core/analytics"
	"github.com/xeralabs/rize-engine/internal/core/services"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Monthly godoc
// @Summary  Per-day usage series for one month
// @Tags     analytics
// @Produce  json
// @Param    year  query int false "Year (defaults to current)"
// @Param    month query int false "Month 1-12 (defaults to current)"
// @Success  200 {object} services.MonthlyUsage
// @Security BearerAuth
// @Router   /analytics/monthly [get]
func (h *AnalyticsHandler) Monthly(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now().UTC()

	year := now.Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
			return
		}
		year = parsed
	}

	// Months are 1-based on the wire, 0-based internally.
	month := int(now.Month())
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
			return
		}
		month = parsed
	}

	usage, err := h.service.GetMonthlyUsage(c.Request.Context(), services.MonthlyUsageInput{
		UserID:     userID,
		Year:       year,
		MonthIndex: month - 1,
		Now:        now,
	})
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidMonth):
			c.JSON(http.StatusBadRequest, gin.H{"error": "month out of range"})
		case errors.Is(err, services.ErrUsageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "usage data temporarily unavailable"})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, usage)
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	analyticsGroup := router.Group("/analytics")
	{
		analyticsGroup.GET("/monthly", h.Monthly)
	}
}
