package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xeralabs/rize-engine/internal/adapters/handler/http/middleware"
	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/core/services"
)

type ArcHandler struct {
	service *services.ArcService
}

func NewArcHandler(service *services.ArcService) *ArcHandler {
	return &ArcHandler{service: service}
}

type createArcRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	TargetDays  int    `json:"target_days"`
}

type updateArcRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	TargetDays  int    `json:"target_days"`
	Status      string `json:"status"`
}

func arcErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrArcNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrArcArchived),
		errors.Is(err, domain.ErrArcTitleEmpty),
		errors.Is(err, domain.ErrArcTitleTooLong),
		errors.Is(err, domain.ErrArcDescTooLong),
		errors.Is(err, domain.ErrArcInvalidColor),
		errors.Is(err, domain.ErrArcInvalidTarget),
		errors.Is(err, domain.ErrArcInvalidStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Create godoc
// @Summary  Create an ARC
// @Tags     arcs
// @Accept   json
// @Produce  json
// @Param    body body createArcRequest true "ARC data"
// @Success  201 {object} domain.Arc
// @Security BearerAuth
// @Router   /arcs [post]
func (h *ArcHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createArcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	arc, err := h.service.Create(c.Request.Context(), services.CreateArcInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		TargetDays:  req.TargetDays,
	})
	if err != nil {
		c.JSON(arcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, arc)
}

func (h *ArcHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	arcs, err := h.service.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list arcs"})
		return
	}

	c.JSON(http.StatusOK, arcs)
}

func (h *ArcHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	arc, err := h.service.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(arcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, arc)
}

func (h *ArcHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateArcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	arc, err := h.service.Update(c.Request.Context(), services.UpdateArcInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		TargetDays:  req.TargetDays,
		Status:      req.Status,
	})
	if err != nil {
		c.JSON(arcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, arc)
}

func (h *ArcHandler) Archive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Archive(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(arcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ArcHandler) Restore(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Restore(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(arcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ArcHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(arcErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ArcHandler) RegisterRoutes(router *gin.RouterGroup) {
	arcsGroup := router.Group("/arcs")
	{
		arcsGroup.POST("", h.Create)
		arcsGroup.GET("", h.List)
		arcsGroup.GET("/:id", h.Get)
		arcsGroup.PUT("/:id", h.Update)
		arcsGroup.POST("/:id/archive", h.Archive)
		arcsGroup.POST("/:id/restore", h.Restore)
		arcsGroup.DELETE("/:id", h.Delete)
	}
}
