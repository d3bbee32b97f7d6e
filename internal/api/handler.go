package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/data"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/store"
)

// Handler holds shared dependencies for API handlers. Reads are served from
// the data façade's local state; auth and devtools go to the store directly.
type Handler struct {
	data  *data.Context
	store *store.Store
}

// NewHandler creates a new API handler.
func NewHandler(d *data.Context, s *store.Store) *Handler {
	return &Handler{data: d, store: s}
}

// writeError maps domain failures onto HTTP status codes. Simulated network
// failures surface as gateway errors, exactly as a flaky real backend would.
func writeError(c *gin.Context, err error) {
	var simulated *netsim.SimulatedError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, netsim.ErrTimedOut):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	case errors.As(err, &simulated):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
