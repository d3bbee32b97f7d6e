package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ntexier-belenos/Sistema-Cloud/config"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/api"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/data"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "sistema-cloud ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
		}
		logger.Printf("no configuration file at %s, using defaults", configPath)
		cfg = config.Default()
	} else {
		logger.Printf("configuration loaded successfully from %s", configPath)
	}

	if !cfg.Backend.UseMock {
		logger.Fatalf("real backend support is not implemented; set backend.use_mock to true")
	}

	gormDB, err := persist.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := netsim.New(simulatorConfig(cfg.Network))
	adapter := persist.NewAdapter(gormDB)
	appStore := store.Open(ctx, adapter, sim, store.DefaultFixtures())
	logger.Println("data store initialized")

	appData := data.New(appStore)
	if err := appData.RefreshAll(ctx); err != nil {
		// Individual collections keep their error flags; the server still
		// starts and a later refresh can recover.
		logger.Printf("initial data load had failures: %v", err)
	}

	router := api.NewRouter(cfg, api.NewHandler(appData, appStore))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

// simulatorConfig maps the YAML network section onto the simulator's own
// configuration type.
func simulatorConfig(n config.NetworkConfig) netsim.Config {
	return netsim.Config{
		Enabled: n.Enabled,
		Latency: netsim.LatencyConfig{
			Enabled: n.Latency.Enabled,
			MinMs:   n.Latency.MinMs,
			MaxMs:   n.Latency.MaxMs,
		},
		Errors: netsim.ErrorsConfig{
			Enabled:     n.Errors.Enabled,
			Probability: n.Errors.Probability,
		},
		Timeout: netsim.TimeoutConfig{
			Enabled:     n.Timeout.Enabled,
			Probability: n.Timeout.Probability,
			TimeoutMs:   n.Timeout.TimeoutMs,
		},
	}
}
