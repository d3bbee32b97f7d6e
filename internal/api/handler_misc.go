package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root handles GET / with a welcome banner.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to Sistema-Cloud API",
		"version": "0.1.0",
		"status":  "operational",
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// GetDashboardStats handles GET /api/dashboard/stats. Stats are served from
// the façade; if they have never been computed, one refresh is attempted
// before giving up.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats := h.data.Dashboard()
	if stats == nil {
		if err := h.data.RefreshDashboardStats(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		stats = h.data.Dashboard()
	}
	if stats == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dashboard stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Refresh handles POST /api/refresh: one coordinated refetch of every
// collection. Per-collection failures land in the returned status rather
// than failing the request.
func (h *Handler) Refresh(c *gin.Context) {
	_ = h.data.RefreshAll(c.Request.Context())
	c.JSON(http.StatusOK, h.data.Status())
}

// GetStatus handles GET /api/status.
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"initializing": h.data.Initializing(),
		"collections":  h.data.Status(),
	})
}
