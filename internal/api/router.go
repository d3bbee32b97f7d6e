package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/ntexier-belenos/Sistema-Cloud/config"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, h *Handler) *gin.Engine {
	r := gin.Default()

	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/projects", h.ListProjects)
		api.POST("/projects", h.CreateProject)
		api.GET("/projects/:id", h.GetProject)
		api.PUT("/projects/:id", h.UpdateProject)
		api.DELETE("/projects/:id", h.DeleteProject)
		api.GET("/projects/:id/machines", h.ListProjectMachines)

		api.GET("/machines", h.ListMachines)
		api.POST("/machines", h.CreateMachine)
		api.GET("/machines/:id", h.GetMachine)
		api.PUT("/machines/:id", h.UpdateMachine)
		api.DELETE("/machines/:id", h.DeleteMachine)
		api.GET("/machines/:id/safety-functions", h.ListMachineSafetyFunctions)

		api.GET("/safety-functions", h.ListSafetyFunctions)
		api.POST("/safety-functions", h.CreateSafetyFunction)
		api.GET("/safety-functions/:id", h.GetSafetyFunction)
		api.PUT("/safety-functions/:id", h.UpdateSafetyFunction)
		api.DELETE("/safety-functions/:id", h.DeleteSafetyFunction)
		api.GET("/safety-functions/:id/sub-components", h.ListSafetyFunctionSubComponents)

		api.GET("/sub-components", h.ListSubComponents)
		api.POST("/sub-components", h.CreateSubComponent)
		api.GET("/sub-components/:id", h.GetSubComponent)
		api.PUT("/sub-components/:id", h.UpdateSubComponent)
		api.DELETE("/sub-components/:id", h.DeleteSubComponent)

		api.GET("/dashboard/stats", caching, h.GetDashboardStats)
		api.POST("/refresh", h.Refresh)
		api.GET("/status", h.GetStatus)

		api.POST("/auth/login", h.Login)
		api.POST("/auth/register", h.Register)

		api.GET("/devtools/network", h.GetNetworkConfig)
		api.PUT("/devtools/network", h.UpdateNetworkConfig)
		api.GET("/devtools/consistency", h.GetConsistency)
		api.POST("/devtools/reset", h.Reset)
	}

	return r
}
