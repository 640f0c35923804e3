package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/indiverse/heritagebot/internal/domain"
	"github.com/indiverse/heritagebot/internal/service"
)

// Handler handles admin API requests
type Handler struct {
	adminService *service.AdminService
}

// NewHandler creates a new admin handler
func NewHandler(adminService *service.AdminService) *Handler {
	return &Handler{adminService: adminService}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStats)
	r.POST("/knowledge/reload", h.ReloadKnowledge)
	r.POST("/catalog/seed", h.SeedCatalog)
}

// GetStats reports knowledge, conversation and catalog sizes
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ReloadKnowledge swaps in the knowledge document from disk
func (h *Handler) ReloadKnowledge(c *gin.Context) {
	stats, err := h.adminService.ReloadKnowledge(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidKnowledgeBase) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SeedCatalog reloads the catalog datasets
func (h *Handler) SeedCatalog(c *gin.Context) {
	report, err := h.adminService.SeedCatalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
