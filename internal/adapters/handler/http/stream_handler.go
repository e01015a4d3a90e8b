package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xeralabs/rize-engine/internal/adapters/handler/http/middleware"
	"github.com/xeralabs/rize-engine/internal/core/domain"
	"github.com/xeralabs/rize-engine/internal/core/services"
)

type StreamHandler struct {
	service *services.StreamService
}

func NewStreamHandler(service *services.StreamService) *StreamHandler {
	return &StreamHandler{service: service}
}

type startStreamRequest struct {
	Title string `json:"title"`
}

func streamErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionAlreadyLive), errors.Is(err, domain.ErrSessionAlreadyEnded):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSessionTitleTooLong), errors.Is(err, domain.ErrSessionInvalidEnd):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Start godoc
// @Summary  Go live
// @Tags     streams
// @Accept   json
// @Produce  json
// @Param    body body startStreamRequest true "Session data"
// @Success  201 {object} domain.StreamSession
// @Security BearerAuth
// @Router   /streams [post]
func (h *StreamHandler) Start(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req startStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.service.Start(c.Request.Context(), services.StartStreamInput{
		UserID: userID,
		Title:  req.Title,
	})
	if err != nil {
		c.JSON(streamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *StreamHandler) End(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.service.End(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.JSON(streamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *StreamHandler) Live(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	session, err := h.service.Live(c.Request.Context(), userID)
	if err != nil {
		c.JSON(streamErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *StreamHandler) RegisterRoutes(router *gin.RouterGroup) {
	streamsGroup := router.Group("/streams")
	{
		streamsGroup.POST("", h.Start)
		streamsGroup.POST("/:id/end", h.End)
		streamsGroup.GET("/live", h.Live)
	}
}
