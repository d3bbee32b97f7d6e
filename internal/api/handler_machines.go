package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
)

type createMachineRequest struct {
	ProjectID           string              `json:"projectId" binding:"required"`
	Name                string              `json:"name" binding:"required"`
	Description         string              `json:"description"`
	Model               string              `json:"model"`
	SerialNumber        string              `json:"serialNumber"`
	Manufacturer        string              `json:"manufacturer"`
	YearOfManufacture   int                 `json:"yearOfManufacture"`
	Status              model.MachineStatus `json:"status" binding:"required,oneof=operational maintenance offline"`
	LastMaintenanceDate time.Time           `json:"lastMaintenanceDate"`
}

// ListMachines handles GET /api/machines with an optional project_id filter.
func (h *Handler) ListMachines(c *gin.Context) {
	if projectID := c.Query("project_id"); projectID != "" {
		c.JSON(http.StatusOK, h.data.ProjectMachines(projectID))
		return
	}
	c.JSON(http.StatusOK, h.data.Machines())
}

// GetMachine handles GET /api/machines/:id.
func (h *Handler) GetMachine(c *gin.Context) {
	m := h.data.Machine(c.Param("id"))
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "machine not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// ListMachineSafetyFunctions handles GET /api/machines/:id/safety-functions.
func (h *Handler) ListMachineSafetyFunctions(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.MachineSafetyFunctions(c.Param("id")))
}

// CreateMachine handles POST /api/machines. A dangling projectId is rejected
// with 422 rather than written.
func (h *Handler) CreateMachine(c *gin.Context) {
	var req createMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.data.CreateMachine(c.Request.Context(), model.Machine{
		ProjectID:           req.ProjectID,
		Name:                req.Name,
		Description:         req.Description,
		Model:               req.Model,
		SerialNumber:        req.SerialNumber,
		Manufacturer:        req.Manufacturer,
		YearOfManufacture:   req.YearOfManufacture,
		Status:              req.Status,
		LastMaintenanceDate: req.LastMaintenanceDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMachine handles PUT /api/machines/:id.
func (h *Handler) UpdateMachine(c *gin.Context) {
	var patch model.MachinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.data.UpdateMachine(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMachine handles DELETE /api/machines/:id.
func (h *Handler) DeleteMachine(c *gin.Context) {
	deleted, err := h.data.DeleteMachine(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "machine not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
