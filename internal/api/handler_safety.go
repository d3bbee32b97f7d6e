package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
)

type createSafetyFunctionRequest struct {
	MachineID   string                     `json:"machineId" binding:"required"`
	Name        string                     `json:"name" binding:"required"`
	Description string                     `json:"description"`
	Type        string                     `json:"type"`
	PLRequired  string                     `json:"plRequired" binding:"required,oneof=a b c d e"`
	PLAchieved  *string                    `json:"plAchieved" binding:"omitempty,oneof=a b c d e"`
	Category    *int                       `json:"category" binding:"omitempty,min=1,max=4"`
	Standards   []string                   `json:"standards"`
	Status      model.SafetyFunctionStatus `json:"status" binding:"required,oneof=draft in_progress validated rejected"`
}

// ListSafetyFunctions handles GET /api/safety-functions with an optional
// machine_id filter.
func (h *Handler) ListSafetyFunctions(c *gin.Context) {
	if machineID := c.Query("machine_id"); machineID != "" {
		c.JSON(http.StatusOK, h.data.MachineSafetyFunctions(machineID))
		return
	}
	c.JSON(http.StatusOK, h.data.SafetyFunctions())
}

// GetSafetyFunction handles GET /api/safety-functions/:id.
func (h *Handler) GetSafetyFunction(c *gin.Context) {
	sf := h.data.SafetyFunction(c.Param("id"))
	if sf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "safety function not found"})
		return
	}
	c.JSON(http.StatusOK, sf)
}

// ListSafetyFunctionSubComponents handles
// GET /api/safety-functions/:id/sub-components.
func (h *Handler) ListSafetyFunctionSubComponents(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.SafetyFunctionSubComponents(c.Param("id")))
}

// CreateSafetyFunction handles POST /api/safety-functions.
func (h *Handler) CreateSafetyFunction(c *gin.Context) {
	var req createSafetyFunctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.data.CreateSafetyFunction(c.Request.Context(), model.SafetyFunction{
		MachineID:   req.MachineID,
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		PLRequired:  req.PLRequired,
		PLAchieved:  req.PLAchieved,
		Category:    req.Category,
		Standards:   req.Standards,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSafetyFunction handles PUT /api/safety-functions/:id.
func (h *Handler) UpdateSafetyFunction(c *gin.Context) {
	var patch model.SafetyFunctionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.data.UpdateSafetyFunction(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSafetyFunction handles DELETE /api/safety-functions/:id.
func (h *Handler) DeleteSafetyFunction(c *gin.Context) {
	deleted, err := h.data.DeleteSafetyFunction(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "safety function not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
