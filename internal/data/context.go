// Package data is the reactive façade the UI-facing layers consume. It
// mirrors the store's collections into observable local state, tracks an
// independent (loading, error) pair per collection, answers derived lookups
// synchronously from that state, and routes every mutation through the store
// so local state and durable storage never diverge.
package data

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/store"
)

// Fixed user-facing error strings. Refresh failures surface these, never the
// underlying error detail.
const (
	msgProjects        = "Failed to load projects"
	msgMachines        = "Failed to load machines"
	msgSafetyFunctions = "Failed to load safety functions"
	msgSubComponents   = "Failed to load sub-components"
	msgDashboard       = "Failed to load dashboard stats"
)

// collection is one tracked (value, loading, error) triple.
type collection[T any] struct {
	value   T
	loading bool
	err     string
}

// CollectionStatus is the observable state of one collection.
type CollectionStatus struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error"`
}

// Status aggregates the flags of every tracked collection.
type Status struct {
	Projects        CollectionStatus `json:"projects"`
	Machines        CollectionStatus `json:"machines"`
	SafetyFunctions CollectionStatus `json:"safetyFunctions"`
	SubComponents   CollectionStatus `json:"subComponents"`
	Dashboard       CollectionStatus `json:"dashboardStats"`
}

// AnyError reports whether any collection is in the error state.
func (s Status) AnyError() bool {
	return s.Projects.Error != "" || s.Machines.Error != "" ||
		s.SafetyFunctions.Error != "" || s.SubComponents.Error != "" ||
		s.Dashboard.Error != ""
}

// Context is the façade instance. Construct one per store and share it by
// reference.
type Context struct {
	mu    sync.RWMutex
	store *store.Store

	projects        collection[[]model.Project]
	machines        collection[[]model.Machine]
	safetyFunctions collection[[]model.SafetyFunction]
	subComponents   collection[[]model.SubComponent]
	dashboard       collection[*model.DashboardStats]
	users           []model.User

	initialized bool
	subscribers map[int]chan struct{}
	nextSubID   int
}

// New creates a façade over the store. Collections start empty; call
// RefreshAll to perform the initial coordinated fetch.
func New(s *store.Store) *Context {
	return &Context{store: s, subscribers: map[int]chan struct{}{}}
}

// Subscribe registers a change signal. The channel receives a non-blocking
// tick after every state change; the returned function cancels the
// subscription.
func (c *Context) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	ch := make(chan struct{}, 1)
	c.subscribers[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Context) notify() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// refresh drives one collection through Loading and into Loaded or Error.
// Entering Loading clears the previous error; the loading flag always drops
// on the way out, whatever the outcome. onError may adjust the stale value.
func refresh[T any](ctx context.Context, c *Context, col *collection[T], msg string,
	fetch func(context.Context) (T, error), onError func(*collection[T])) error {

	c.mu.Lock()
	col.loading = true
	col.err = ""
	c.mu.Unlock()
	c.notify()

	value, err := fetch(ctx)

	c.mu.Lock()
	if err != nil {
		col.err = msg
		if onError != nil {
			onError(col)
		}
	} else {
		col.value = value
	}
	col.loading = false
	c.mu.Unlock()
	c.notify()
	return err
}

// RefreshProjects reloads the project collection. On failure the last good
// value is kept.
func (c *Context) RefreshProjects(ctx context.Context) error {
	return refresh(ctx, c, &c.projects, msgProjects, c.store.Projects, nil)
}

// RefreshMachines reloads the machine collection. Unlike the other
// collections, a failed refresh resets machines to empty rather than keeping
// the stale value, so nothing downstream acts on partial machine data.
func (c *Context) RefreshMachines(ctx context.Context) error {
	return refresh(ctx, c, &c.machines, msgMachines,
		func(ctx context.Context) ([]model.Machine, error) { return c.store.Machines(ctx, "") },
		func(col *collection[[]model.Machine]) { col.value = []model.Machine{} })
}

// RefreshSafetyFunctions reloads the safety-function collection.
func (c *Context) RefreshSafetyFunctions(ctx context.Context) error {
	return refresh(ctx, c, &c.safetyFunctions, msgSafetyFunctions,
		func(ctx context.Context) ([]model.SafetyFunction, error) { return c.store.SafetyFunctions(ctx, "") }, nil)
}

// RefreshSubComponents reloads the sub-component collection.
func (c *Context) RefreshSubComponents(ctx context.Context) error {
	return refresh(ctx, c, &c.subComponents, msgSubComponents,
		func(ctx context.Context) ([]model.SubComponent, error) { return c.store.SubComponents(ctx, "") }, nil)
}

// RefreshDashboardStats recomputes the dashboard aggregate.
func (c *Context) RefreshDashboardStats(ctx context.Context) error {
	return refresh(ctx, c, &c.dashboard, msgDashboard,
		func(ctx context.Context) (*model.DashboardStats, error) {
			stats, err := c.store.DashboardStats(ctx)
			if err != nil {
				return nil, err
			}
			return &stats, nil
		}, nil)
}

// RefreshUsers reloads the user collection. Users carry no loading or error
// flags; a failure just keeps the previous value.
func (c *Context) RefreshUsers(ctx context.Context) error {
	users, err := c.store.Users(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.users = users
	c.mu.Unlock()
	c.notify()
	return nil
}

// RefreshAll performs one coordinated parallel fetch of every collection.
// Individual failures are recorded in the per-collection error state; the
// returned error is the first failure, for callers that want it. Each fetch
// runs against the parent context, never a group-scoped one: one failed
// collection must not cancel its siblings.
func (c *Context) RefreshAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.RefreshProjects(ctx) })
	g.Go(func() error { return c.RefreshMachines(ctx) })
	g.Go(func() error { return c.RefreshSafetyFunctions(ctx) })
	g.Go(func() error { return c.RefreshSubComponents(ctx) })
	g.Go(func() error { return c.RefreshDashboardStats(ctx) })
	g.Go(func() error {
		// Best effort: users are untracked.
		_ = c.RefreshUsers(ctx)
		return nil
	})
	err := g.Wait()

	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()
	c.notify()
	return err
}

// Initializing reports whether the first coordinated fetch has not yet
// completed.
func (c *Context) Initializing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.initialized
}

// Status returns the current loading/error flags of every collection.
func (c *Context) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		Projects:        CollectionStatus{Loading: c.projects.loading, Error: c.projects.err},
		Machines:        CollectionStatus{Loading: c.machines.loading, Error: c.machines.err},
		SafetyFunctions: CollectionStatus{Loading: c.safetyFunctions.loading, Error: c.safetyFunctions.err},
		SubComponents:   CollectionStatus{Loading: c.subComponents.loading, Error: c.subComponents.err},
		Dashboard:       CollectionStatus{Loading: c.dashboard.loading, Error: c.dashboard.err},
	}
}
