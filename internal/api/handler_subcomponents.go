package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
)

type createSubComponentRequest struct {
	SafetyFunctionID string                 `json:"safetyFunctionId" binding:"required"`
	Name             string                 `json:"name" binding:"required"`
	Description      string                 `json:"description"`
	Type             model.SubComponentType `json:"type" binding:"required,oneof=sensor logic actuator"`
	Category         *int                   `json:"category" binding:"omitempty,min=1,max=4"`
	MTTFd            *float64               `json:"mttfd"`
	DCavg            *float64               `json:"dcavg"`
	CCF              *float64               `json:"ccf"`
	Architecture     *string                `json:"architecture"`
}

// ListSubComponents handles GET /api/sub-components with an optional
// safety_function_id filter.
func (h *Handler) ListSubComponents(c *gin.Context) {
	if sfID := c.Query("safety_function_id"); sfID != "" {
		c.JSON(http.StatusOK, h.data.SafetyFunctionSubComponents(sfID))
		return
	}
	c.JSON(http.StatusOK, h.data.SubComponents())
}

// GetSubComponent handles GET /api/sub-components/:id.
func (h *Handler) GetSubComponent(c *gin.Context) {
	sc := h.data.SubComponent(c.Param("id"))
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-component not found"})
		return
	}
	c.JSON(http.StatusOK, sc)
}

// CreateSubComponent handles POST /api/sub-components.
func (h *Handler) CreateSubComponent(c *gin.Context) {
	var req createSubComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.data.CreateSubComponent(c.Request.Context(), model.SubComponent{
		SafetyFunctionID: req.SafetyFunctionID,
		Name:             req.Name,
		Description:      req.Description,
		Type:             req.Type,
		Category:         req.Category,
		MTTFd:            req.MTTFd,
		DCavg:            req.DCavg,
		CCF:              req.CCF,
		Architecture:     req.Architecture,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSubComponent handles PUT /api/sub-components/:id.
func (h *Handler) UpdateSubComponent(c *gin.Context) {
	var patch model.SubComponentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.data.UpdateSubComponent(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSubComponent handles DELETE /api/sub-components/:id.
func (h *Handler) DeleteSubComponent(c *gin.Context) {
	deleted, err := h.data.DeleteSubComponent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "sub-component not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
