package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
)

// SubComponents returns all sub-components, or only those of one safety
// function when safetyFunctionID is non-empty.
func (s *Store) SubComponents(ctx context.Context, safetyFunctionID string) ([]model.SubComponent, error) {
	return netsim.Run(ctx, s.sim, "Failed to load sub-components", func() ([]model.SubComponent, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		if safetyFunctionID == "" {
			return cloneOrEmpty(s.subComponents), nil
		}
		out := []model.SubComponent{}
		for _, sc := range s.subComponents {
			if sc.SafetyFunctionID == safetyFunctionID {
				out = append(out, sc)
			}
		}
		return out, nil
	})
}

// SubComponent returns the sub-component with the given id, or nil.
func (s *Store) SubComponent(ctx context.Context, id string) (*model.SubComponent, error) {
	return netsim.Run(ctx, s.sim, fmt.Sprintf("Failed to load sub-component with ID: %s", id), func() (*model.SubComponent, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if i := indexOf(s.subComponents, func(sc model.SubComponent) bool { return sc.ID == id }); i >= 0 {
			sc := s.subComponents[i]
			return &sc, nil
		}
		return nil, nil
	})
}

// CreateSubComponent stores a new sub-component. The referenced safety
// function must exist.
func (s *Store) CreateSubComponent(ctx context.Context, sc model.SubComponent) (model.SubComponent, error) {
	return netsim.Run(ctx, s.sim, "Failed to create sub-component", func() (model.SubComponent, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.safetyFunctionExistsLocked(sc.SafetyFunctionID) {
			return model.SubComponent{}, fmt.Errorf("sub-component references unknown safety function %q: %w", sc.SafetyFunctionID, ErrInvalidReference)
		}

		t := now()
		sc.ID = uuid.NewString()
		sc.CreatedAt = t
		sc.UpdatedAt = t
		s.subComponents = append(s.subComponents, sc)
		s.persistLocked(ctx, persist.KeySubComponents, s.subComponents)
		return sc, nil
	})
}

// UpdateSubComponent merges the patch onto an existing sub-component. A
// patched safetyFunctionId is validated against the safety-function
// collection.
func (s *Store) UpdateSubComponent(ctx context.Context, id string, patch model.SubComponentPatch) (model.SubComponent, error) {
	return netsim.Run(ctx, s.sim, "Failed to update sub-component", func() (model.SubComponent, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.subComponents, func(sc model.SubComponent) bool { return sc.ID == id })
		if i < 0 {
			return model.SubComponent{}, fmt.Errorf("sub-component %q: %w", id, ErrNotFound)
		}

		sc := s.subComponents[i]
		if patch.SafetyFunctionID != nil {
			if !s.safetyFunctionExistsLocked(*patch.SafetyFunctionID) {
				return model.SubComponent{}, fmt.Errorf("sub-component references unknown safety function %q: %w", *patch.SafetyFunctionID, ErrInvalidReference)
			}
			sc.SafetyFunctionID = *patch.SafetyFunctionID
		}
		if patch.Name != nil {
			sc.Name = *patch.Name
		}
		if patch.Description != nil {
			sc.Description = *patch.Description
		}
		if patch.Type != nil {
			sc.Type = *patch.Type
		}
		if patch.Category != nil {
			sc.Category = patch.Category
		}
		if patch.MTTFd != nil {
			sc.MTTFd = patch.MTTFd
		}
		if patch.DCavg != nil {
			sc.DCavg = patch.DCavg
		}
		if patch.CCF != nil {
			sc.CCF = patch.CCF
		}
		if patch.Architecture != nil {
			sc.Architecture = patch.Architecture
		}
		sc.UpdatedAt = now()
		s.subComponents[i] = sc
		s.persistLocked(ctx, persist.KeySubComponents, s.subComponents)
		return sc, nil
	})
}

// DeleteSubComponent removes a sub-component. It reports false for an
// unknown id.
func (s *Store) DeleteSubComponent(ctx context.Context, id string) (bool, error) {
	return netsim.Run(ctx, s.sim, "Failed to delete sub-component", func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.subComponents, func(sc model.SubComponent) bool { return sc.ID == id })
		if i < 0 {
			return false, nil
		}
		s.subComponents = append(s.subComponents[:i], s.subComponents[i+1:]...)
		s.persistLocked(ctx, persist.KeySubComponents, s.subComponents)
		return true, nil
	})
}
