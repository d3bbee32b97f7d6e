package netsim

// Config is the full simulator configuration. The zero value disables all
// simulation.
type Config struct {
	Enabled bool          `json:"enabled"`
	Latency LatencyConfig `json:"latency"`
	Errors  ErrorsConfig  `json:"errors"`
	Timeout TimeoutConfig `json:"timeout"`
}

// LatencyConfig delays each call by a uniformly random duration in
// [MinMs, MaxMs) when enabled.
type LatencyConfig struct {
	Enabled bool `json:"enabled"`
	MinMs   int  `json:"minMs"`
	MaxMs   int  `json:"maxMs"`
}

// ErrorsConfig rejects each call with the caller-supplied error message with
// the given probability when enabled.
type ErrorsConfig struct {
	Enabled     bool    `json:"enabled"`
	Probability float64 `json:"probability"`
}

// TimeoutConfig arms a timeout rejection at TimeoutMs with the given
// probability when enabled, independently of error injection.
type TimeoutConfig struct {
	Enabled     bool    `json:"enabled"`
	Probability float64 `json:"probability"`
	TimeoutMs   int     `json:"timeoutMs"`
}

// Patch is a partial configuration update. Nil fields keep their current
// value. It is also the request body of the devtools endpoint.
type Patch struct {
	Enabled *bool         `json:"enabled"`
	Latency *LatencyPatch `json:"latency"`
	Errors  *ErrorsPatch  `json:"errors"`
	Timeout *TimeoutPatch `json:"timeout"`
}

// LatencyPatch is a partial update of the latency section.
type LatencyPatch struct {
	Enabled *bool `json:"enabled"`
	MinMs   *int  `json:"minMs"`
	MaxMs   *int  `json:"maxMs"`
}

// ErrorsPatch is a partial update of the error-injection section.
type ErrorsPatch struct {
	Enabled     *bool    `json:"enabled"`
	Probability *float64 `json:"probability"`
}

// TimeoutPatch is a partial update of the timeout-injection section.
type TimeoutPatch struct {
	Enabled     *bool    `json:"enabled"`
	Probability *float64 `json:"probability"`
	TimeoutMs   *int     `json:"timeoutMs"`
}

// Merge applies a patch to a configuration and returns the result. It is a
// pure function so configuration handling is testable on its own.
func Merge(cfg Config, p Patch) Config {
	if p.Enabled != nil {
		cfg.Enabled = *p.Enabled
	}
	if p.Latency != nil {
		if p.Latency.Enabled != nil {
			cfg.Latency.Enabled = *p.Latency.Enabled
		}
		if p.Latency.MinMs != nil {
			cfg.Latency.MinMs = *p.Latency.MinMs
		}
		if p.Latency.MaxMs != nil {
			cfg.Latency.MaxMs = *p.Latency.MaxMs
		}
	}
	if p.Errors != nil {
		if p.Errors.Enabled != nil {
			cfg.Errors.Enabled = *p.Errors.Enabled
		}
		if p.Errors.Probability != nil {
			cfg.Errors.Probability = *p.Errors.Probability
		}
	}
	if p.Timeout != nil {
		if p.Timeout.Enabled != nil {
			cfg.Timeout.Enabled = *p.Timeout.Enabled
		}
		if p.Timeout.Probability != nil {
			cfg.Timeout.Probability = *p.Timeout.Probability
		}
		if p.Timeout.TimeoutMs != nil {
			cfg.Timeout.TimeoutMs = *p.Timeout.TimeoutMs
		}
	}
	return cfg
}
