package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
)

// GetNetworkConfig handles GET /api/devtools/network.
func (h *Handler) GetNetworkConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Simulator().Snapshot())
}

// UpdateNetworkConfig handles PUT /api/devtools/network. The body is a
// partial configuration; omitted fields keep their current values.
func (h *Handler) UpdateNetworkConfig(c *gin.Context) {
	var patch netsim.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.store.Simulator().Configure(patch))
}

// GetConsistency handles GET /api/devtools/consistency.
func (h *Handler) GetConsistency(c *gin.Context) {
	report, err := h.store.CheckConsistency(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clean": report.Clean(), "report": report})
}

// Reset handles POST /api/devtools/reset. It restores the fixture defaults
// and refetches every collection so the façade matches them.
func (h *Handler) Reset(c *gin.Context) {
	h.store.ResetToDefaults(c.Request.Context())
	if err := h.data.RefreshAll(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.data.Status())
}
