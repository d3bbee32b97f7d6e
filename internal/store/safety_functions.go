package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
)

// SafetyFunctions returns all safety functions, or only those of one machine
// when machineID is non-empty.
func (s *Store) SafetyFunctions(ctx context.Context, machineID string) ([]model.SafetyFunction, error) {
	return netsim.Run(ctx, s.sim, "Failed to load safety functions", func() ([]model.SafetyFunction, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		if machineID == "" {
			return cloneOrEmpty(s.safetyFunctions), nil
		}
		out := []model.SafetyFunction{}
		for _, sf := range s.safetyFunctions {
			if sf.MachineID == machineID {
				out = append(out, sf)
			}
		}
		return out, nil
	})
}

// SafetyFunction returns the safety function with the given id, or nil.
func (s *Store) SafetyFunction(ctx context.Context, id string) (*model.SafetyFunction, error) {
	return netsim.Run(ctx, s.sim, fmt.Sprintf("Failed to load safety function with ID: %s", id), func() (*model.SafetyFunction, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if i := indexOf(s.safetyFunctions, func(sf model.SafetyFunction) bool { return sf.ID == id }); i >= 0 {
			sf := s.safetyFunctions[i]
			return &sf, nil
		}
		return nil, nil
	})
}

// CreateSafetyFunction stores a new safety function. The referenced machine
// must exist.
func (s *Store) CreateSafetyFunction(ctx context.Context, sf model.SafetyFunction) (model.SafetyFunction, error) {
	return netsim.Run(ctx, s.sim, "Failed to create safety function", func() (model.SafetyFunction, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.machineExistsLocked(sf.MachineID) {
			return model.SafetyFunction{}, fmt.Errorf("safety function references unknown machine %q: %w", sf.MachineID, ErrInvalidReference)
		}

		t := now()
		sf.ID = uuid.NewString()
		sf.CreatedAt = t
		sf.UpdatedAt = t
		s.safetyFunctions = append(s.safetyFunctions, sf)
		s.persistLocked(ctx, persist.KeySafetyFunctions, s.safetyFunctions)
		return sf, nil
	})
}

// UpdateSafetyFunction merges the patch onto an existing safety function. A
// patched machineId is validated against the machine collection.
func (s *Store) UpdateSafetyFunction(ctx context.Context, id string, patch model.SafetyFunctionPatch) (model.SafetyFunction, error) {
	return netsim.Run(ctx, s.sim, "Failed to update safety function", func() (model.SafetyFunction, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.safetyFunctions, func(sf model.SafetyFunction) bool { return sf.ID == id })
		if i < 0 {
			return model.SafetyFunction{}, fmt.Errorf("safety function %q: %w", id, ErrNotFound)
		}

		sf := s.safetyFunctions[i]
		if patch.MachineID != nil {
			if !s.machineExistsLocked(*patch.MachineID) {
				return model.SafetyFunction{}, fmt.Errorf("safety function references unknown machine %q: %w", *patch.MachineID, ErrInvalidReference)
			}
			sf.MachineID = *patch.MachineID
		}
		if patch.Name != nil {
			sf.Name = *patch.Name
		}
		if patch.Description != nil {
			sf.Description = *patch.Description
		}
		if patch.Type != nil {
			sf.Type = *patch.Type
		}
		if patch.PLRequired != nil {
			sf.PLRequired = *patch.PLRequired
		}
		if patch.PLAchieved != nil {
			sf.PLAchieved = patch.PLAchieved
		}
		if patch.Category != nil {
			sf.Category = patch.Category
		}
		if patch.Standards != nil {
			sf.Standards = patch.Standards
		}
		if patch.Status != nil {
			sf.Status = *patch.Status
		}
		if patch.ValidatedBy != nil {
			sf.ValidatedBy = patch.ValidatedBy
		}
		if patch.ValidatedAt != nil {
			sf.ValidatedAt = patch.ValidatedAt
		}
		sf.UpdatedAt = now()
		s.safetyFunctions[i] = sf
		s.persistLocked(ctx, persist.KeySafetyFunctions, s.safetyFunctions)
		return sf, nil
	})
}

// DeleteSafetyFunction removes a safety function. It reports false for an
// unknown id and never cascades to sub-components.
func (s *Store) DeleteSafetyFunction(ctx context.Context, id string) (bool, error) {
	return netsim.Run(ctx, s.sim, "Failed to delete safety function", func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.safetyFunctions, func(sf model.SafetyFunction) bool { return sf.ID == id })
		if i < 0 {
			return false, nil
		}
		s.safetyFunctions = append(s.safetyFunctions[:i], s.safetyFunctions[i+1:]...)
		s.persistLocked(ctx, persist.KeySafetyFunctions, s.safetyFunctions)
		return true, nil
	})
}

func (s *Store) safetyFunctionExistsLocked(id string) bool {
	return indexOf(s.safetyFunctions, func(sf model.SafetyFunction) bool { return sf.ID == id }) >= 0
}
