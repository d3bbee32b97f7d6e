package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Network  NetworkConfig  `yaml:"network"`
	Backend  BackendConfig  `yaml:"backend"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the durable store configuration. Driver is "sqlite"
// (default) or "postgres".
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// NetworkConfig is the initial network-simulator configuration. All of it can
// be changed at runtime through the devtools endpoint.
type NetworkConfig struct {
	Enabled bool                 `yaml:"enabled"`
	Latency LatencyConfig        `yaml:"latency"`
	Errors  ErrorInjectionConfig `yaml:"errors"`
	Timeout TimeoutConfig        `yaml:"timeout"`
}

// LatencyConfig bounds the artificial delay added to simulated calls.
type LatencyConfig struct {
	Enabled bool `yaml:"enabled"`
	MinMs   int  `yaml:"min_ms"`
	MaxMs   int  `yaml:"max_ms"`
}

// ErrorInjectionConfig controls random failure injection.
type ErrorInjectionConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Probability float64 `yaml:"probability"`
}

// TimeoutConfig controls random timeout injection.
type TimeoutConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Probability float64 `yaml:"probability"`
	TimeoutMs   int     `yaml:"timeout_ms"`
}

// BackendConfig selects between the mock data tier and a real backend. The
// real backend is not implemented; the flag and base URL are carried for the
// surrounding tooling.
type BackendConfig struct {
	UseMock bool   `yaml:"use_mock"`
	BaseURL string `yaml:"base_url"`
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns the configuration used when no file is provided. The mock
// backend is the default; an explicit `use_mock: false` selects the real one.
func Default() *Config {
	cfg := &Config{}
	cfg.Backend.UseMock = true
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "sistema.db"
	}
	if cfg.Network.Latency.MinMs <= 0 {
		cfg.Network.Latency.MinMs = 300
	}
	if cfg.Network.Latency.MaxMs <= 0 {
		cfg.Network.Latency.MaxMs = 1500
	}
	if cfg.Network.Errors.Probability <= 0 {
		cfg.Network.Errors.Probability = 0.2
	}
	if cfg.Network.Timeout.Probability <= 0 {
		cfg.Network.Timeout.Probability = 0.1
	}
	if cfg.Network.Timeout.TimeoutMs <= 0 {
		cfg.Network.Timeout.TimeoutMs = 5000
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
}
