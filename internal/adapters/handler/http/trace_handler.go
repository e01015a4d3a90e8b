package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xeralabs/rize-engine/internal/adapters/handler/http/middleware"
	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/core/services"
)

type TraceHandler struct {
	service *services.TraceService
}

func NewTraceHandler(service *services.TraceService) *TraceHandler {
	return &TraceHandler{service: service}
}

type createTraceRequest struct {
	ArcID     string `json:"arc_id" binding:"required"`
	TraceDate string `json:"trace_date" binding:"required"` // YYYY-MM-DD
	Outcome   string `json:"outcome" binding:"required"`
	Note      string `json:"note"`
}

type updateTraceRequest struct {
	Outcome string `json:"outcome" binding:"required"`
	Note    string `json:"note"`
	Version int    `json:"version"`
}

func traceErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrTraceNotFound), errors.Is(err, domain.ErrArcNotFound):
		return http.StatusNotFound
	// Ownership failures read as 404 so trace IDs cannot be probed.
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTraceConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTrace), errors.Is(err, domain.ErrInvalidTraceOutcome):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Create godoc
// @Summary  Record a trace against an ARC
// @Tags     traces
// @Accept   json
// @Produce  json
// @Param    body body createTraceRequest true "Trace data"
// @Success  201 {object} domain.Trace
// @Security BearerAuth
// @Router   /traces [post]
func (h *TraceHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createTraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	traceDate, err := time.ParseInLocation("2006-01-02", req.TraceDate, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trace_date must be YYYY-MM-DD"})
		return
	}

	trace, err := h.service.Create(c.Request.Context(), services.CreateTraceInput{
		ArcID:     req.ArcID,
		UserID:    userID,
		TraceDate: traceDate,
		Outcome:   req.Outcome,
		Note:      req.Note,
	})
	if err != nil {
		c.JSON(traceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, trace)
}

func (h *TraceHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	trace, err := h.service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(traceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, trace)
}

// ListByArc returns the traces of one ARC, optionally bounded by
// ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *TraceHandler) ListByArc(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	traces, err := h.service.ListByArcID(c.Request.Context(), c.Param("id"), userID, from, to)
	if err != nil {
		c.JSON(traceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, traces)
}

func (h *TraceHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateTraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trace, err := h.service.Update(c.Request.Context(), services.UpdateTraceInput{
		ID:      c.Param("id"),
		UserID:  userID,
		Outcome: req.Outcome,
		Note:    req.Note,
		Version: req.Version,
	})
	if err != nil {
		c.JSON(traceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, trace)
}

func (h *TraceHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(traceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TraceHandler) RegisterRoutes(router *gin.RouterGroup) {
	tracesGroup := router.Group("/traces")
	{
		tracesGroup.POST("", h.Create)
		tracesGroup.GET("/:id", h.Get)
		tracesGroup.PUT("/:id", h.Update)
		tracesGroup.DELETE("/:id", h.Delete)
	}

	router.GET("/arcs/:id/traces", h.ListByArc)
}
