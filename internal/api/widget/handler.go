package widget

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/indiverse/heritagebot/internal/api/middleware"
	"github.com/indiverse/heritagebot/internal/domain"
	"github.com/indiverse/heritagebot/internal/service"
)

// Handler handles the public widget, chat and navigation API
type Handler struct {
	widgetService     *service.WidgetService
	chatService       *service.ChatService
	navigationService *service.NavigationService
}

// NewHandler creates a new widget handler
func NewHandler(
	widgetService *service.WidgetService,
	chatService *service.ChatService,
	navigationService *service.NavigationService,
) *Handler {
	return &Handler{
		widgetService:     widgetService,
		chatService:       chatService,
		navigationService: navigationService,
	}
}

// RegisterRoutes registers public routes under r. chat runs before every
// chat route.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, chat ...gin.HandlerFunc) {
	r.GET("/widget/config", h.GetConfig)
	r.GET("/breadcrumbs", h.Breadcrumbs)
	r.GET("/weather/:city", h.Weather)

	chatGroup := r.Group("/chat", chat...)
	{
		chatGroup.POST("/respond", h.Respond)
		chatGroup.POST("/sessions", h.StartSession)
		chatGroup.GET("/sessions/:id/messages", h.Messages)
		chatGroup.POST("/sessions/:id/messages", h.Send)
		chatGroup.POST("/sessions/:id/open", h.Open)
		chatGroup.POST("/sessions/:id/hide", h.Hide)
		chatGroup.DELETE("/sessions/:id", h.End)
	}
}

// GetConfig returns the widget configuration
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.widgetService.GetWidgetConfig(c.Request.Context()))
}

// Respond answers a single utterance outside any conversation
func (h *Handler) Respond(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.Respond(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// StartSession opens a new conversation
func (h *Handler) StartSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.chatService.StartSession(c.Request.Context()))
}

// Messages returns a conversation's log
func (h *Handler) Messages(c *gin.Context) {
	resp, err := h.chatService.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Send posts a user message to a conversation
func (h *Handler) Send(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.Send(c.Request.Context(), c.Param("id"), middleware.Username(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Open shows the chat panel
func (h *Handler) Open(c *gin.Context) {
	resp, err := h.chatService.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Hide hides the chat panel
func (h *Handler) Hide(c *gin.Context) {
	resp, err := h.chatService.Hide(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// End discards a conversation
func (h *Handler) End(c *gin.Context) {
	if err := h.chatService.End(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}

// Breadcrumbs labels the segments of the path query parameter
func (h *Handler) Breadcrumbs(c *gin.Context) {
	crumbs, err := h.navigationService.Breadcrumbs(c.Request.Context(), c.Query("path"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"crumbs": crumbs})
}

// Weather returns current weather for a city
func (h *Handler) Weather(c *gin.Context) {
	report, err := h.widgetService.Weather(c.Request.Context(), c.Param("city"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
