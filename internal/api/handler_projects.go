package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
)

type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Projects())
}

// GetProject handles GET /api/projects/:id.
func (h *Handler) GetProject(c *gin.Context) {
	p := h.data.Project(c.Param("id"))
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProjectMachines handles GET /api/projects/:id/machines.
func (h *Handler) ListProjectMachines(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.ProjectMachines(c.Param("id")))
}

// CreateProject handles POST /api/projects.
func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.data.CreateProject(c.Request.Context(), model.Project{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateProject handles PUT /api/projects/:id.
func (h *Handler) UpdateProject(c *gin.Context) {
	var patch model.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.data.UpdateProject(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteProject handles DELETE /api/projects/:id. Deleting an absent project
// is a 404; machines of a deleted project are left in place.
func (h *Handler) DeleteProject(c *gin.Context) {
	deleted, err := h.data.DeleteProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
