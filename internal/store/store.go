// Package store is the in-memory system of record for all compliance
// entities. Collections are hydrated from the persistence adapter at startup
// (or seeded from fixtures on first run), every mutation writes the affected
// collection back through, and every operation is routed through the network
// simulator at this single boundary.
package store

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
)

// Store holds the entity collections and serializes access to them. One
// store-wide mutex guards all collections: mutations are short in-memory
// splices plus a write-through save, and serializing them store-wide rules
// out lost updates between overlapping refresh and mutate sequences.
type Store struct {
	mu      sync.RWMutex
	adapter *persist.Adapter
	sim     *netsim.Simulator

	projects        []model.Project
	machines        []model.Machine
	safetyFunctions []model.SafetyFunction
	subComponents   []model.SubComponent
	users           []model.User
}

// Open builds a store over the given adapter and simulator. If the durable
// store has data, collections present there replace the fixtures (absent or
// malformed keys keep their fixture defaults); otherwise the fixtures are
// saved immediately so later runs hydrate consistently.
func Open(ctx context.Context, adapter *persist.Adapter, sim *netsim.Simulator, fx Fixtures) *Store {
	s := &Store{
		adapter:         adapter,
		sim:             sim,
		projects:        fx.Projects,
		machines:        fx.Machines,
		safetyFunctions: fx.SafetyFunctions,
		subComponents:   fx.SubComponents,
		users:           fx.Users,
	}

	if adapter.HasData(ctx) {
		raw := adapter.Load(ctx)
		hydrate(raw, persist.KeyProjects, &s.projects)
		hydrate(raw, persist.KeyMachines, &s.machines)
		hydrate(raw, persist.KeySafetyFunctions, &s.safetyFunctions)
		hydrate(raw, persist.KeySubComponents, &s.subComponents)
		hydrate(raw, persist.KeyUsers, &s.users)
		log.Printf("store: hydrated collections from durable storage")
	} else {
		s.saveAll(ctx)
		log.Printf("store: no stored data, seeded fixture defaults")
	}
	return s
}

// hydrate replaces *dst with the decoded payload for key, if one is present
// and well-formed. Malformed payloads are treated as no data for that key.
func hydrate[T any](raw map[string]json.RawMessage, key string, dst *[]T) {
	data, ok := raw[key]
	if !ok {
		return
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("store: malformed stored data for %q, keeping defaults: %v", key, err)
		return
	}
	*dst = items
}

// ResetToDefaults clears durable storage, restores the compiled-in fixtures
// and persists them. A heavy-handed reset for the developer tooling.
func (s *Store) ResetToDefaults(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.adapter.Clear(ctx)
	fx := DefaultFixtures()
	s.projects = fx.Projects
	s.machines = fx.Machines
	s.safetyFunctions = fx.SafetyFunctions
	s.subComponents = fx.SubComponents
	s.users = fx.Users
	s.saveAllLocked(ctx)
	log.Printf("store: reset to fixture defaults")
}

// Simulator exposes the network simulator for the devtools endpoints.
func (s *Store) Simulator() *netsim.Simulator { return s.sim }

func (s *Store) saveAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveAllLocked(ctx)
}

func (s *Store) saveAllLocked(ctx context.Context) {
	s.adapter.SaveCollections(ctx, map[string]any{
		persist.KeyProjects:        s.projects,
		persist.KeyMachines:        s.machines,
		persist.KeySafetyFunctions: s.safetyFunctions,
		persist.KeySubComponents:   s.subComponents,
		persist.KeyUsers:           s.users,
	})
}

// persistLocked writes one collection through to durable storage. Callers
// hold the write lock.
func (s *Store) persistLocked(ctx context.Context, key string, value any) {
	s.adapter.SaveCollections(ctx, map[string]any{key: value})
}

// indexOf returns the position of the first item matching the predicate, or
// -1 if there is none.
func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}

// cloneOrEmpty defensively copies a collection for return to callers, mapping
// a nil backing slice to an empty one so list reads never fail.
func cloneOrEmpty[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func now() time.Time { return time.Now().UTC() }
