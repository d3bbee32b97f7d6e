// Package netsim wraps operations with configurable artificial latency,
// random failure injection and random timeout injection, to exercise the
// in-flight and failure paths of the layers above without a real network.
package netsim

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrTimedOut is the injected timeout failure. It is distinct from simulated
// errors so callers can tell the two apart.
var ErrTimedOut = errors.New("request timed out")

// SimulatedError is an injected failure carrying the caller-supplied message.
// To callers it is indistinguishable from a real backend failure.
type SimulatedError struct {
	Message string
}

func (e *SimulatedError) Error() string { return e.Message }

// Simulator applies the configured network conditions to wrapped operations.
// Construct one per store; there is no package-level instance.
type Simulator struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand
}

// New creates a simulator with a time-seeded random source.
func New(cfg Config) *Simulator {
	return NewWithRand(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a simulator with an explicit random source, which makes
// injection decisions reproducible under a fixed seed.
func NewWithRand(cfg Config, rng *rand.Rand) *Simulator {
	return &Simulator{cfg: cfg, rng: rng}
}

// Snapshot returns a copy of the current configuration.
func (s *Simulator) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Configure merges a partial configuration into the current one and returns
// the result.
func (s *Simulator) Configure(p Patch) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = Merge(s.cfg, p)
	return s.cfg
}

// SetEnabled flips the master switch and returns the resulting configuration.
func (s *Simulator) SetEnabled(enabled bool) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Enabled = enabled
	return s.cfg
}

// callPlan is the outcome drawn for a single wrapped call. All random
// decisions are made up front, under the lock, because the random source is
// not goroutine-safe.
type callPlan struct {
	delay        time.Duration
	fail         bool
	timeout      bool
	timeoutAfter time.Duration
}

func (s *Simulator) plan() (callPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Enabled {
		return callPlan{}, false
	}

	var p callPlan
	if s.cfg.Latency.Enabled {
		minMs, maxMs := s.cfg.Latency.MinMs, s.cfg.Latency.MaxMs
		if maxMs > minMs {
			p.delay = time.Duration(minMs+s.rng.Intn(maxMs-minMs)) * time.Millisecond
		} else {
			p.delay = time.Duration(minMs) * time.Millisecond
		}
	}
	if s.cfg.Errors.Enabled {
		p.fail = s.rng.Float64() < s.cfg.Errors.Probability
	}
	if s.cfg.Timeout.Enabled {
		p.timeout = s.rng.Float64() < s.cfg.Timeout.Probability
		p.timeoutAfter = time.Duration(s.cfg.Timeout.TimeoutMs) * time.Millisecond
	}
	return p, true
}

// Run executes op under the simulator's current conditions. With the
// simulator disabled the operation runs directly. Otherwise the call either
// resolves with op's result after the drawn latency, fails with a
// SimulatedError carrying errMsg after that same latency, or fails with
// ErrTimedOut once the timeout fires; the first of these to settle wins.
// Context cancellation also settles the race.
func Run[T any](ctx context.Context, s *Simulator, errMsg string, op func() (T, error)) (T, error) {
	var zero T
	p, enabled := s.plan()
	if !enabled {
		return op()
	}

	type outcome struct {
		val T
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		if p.delay > 0 {
			timer := time.NewTimer(p.delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				done <- outcome{err: ctx.Err()}
				return
			}
		}
		if p.fail {
			done <- outcome{err: &SimulatedError{Message: errMsg}}
			return
		}
		v, err := op()
		done <- outcome{val: v, err: err}
	}()

	var timeoutC <-chan time.Time
	if p.timeout {
		timer := time.NewTimer(p.timeoutAfter)
		defer timer.Stop()
		timeoutC = timer.C
	}

	select {
	case o := <-done:
		return o.val, o.err
	case <-timeoutC:
		return zero, ErrTimedOut
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
