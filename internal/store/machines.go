package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
)

// Machines returns all machines, or only those of one project when projectID
// is non-empty.
func (s *Store) Machines(ctx context.Context, projectID string) ([]model.Machine, error) {
	return netsim.Run(ctx, s.sim, "Failed to load machines", func() ([]model.Machine, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		if projectID == "" {
			return cloneOrEmpty(s.machines), nil
		}
		out := []model.Machine{}
		for _, m := range s.machines {
			if m.ProjectID == projectID {
				out = append(out, m)
			}
		}
		return out, nil
	})
}

// Machine returns the machine with the given id, or nil if there is none.
func (s *Store) Machine(ctx context.Context, id string) (*model.Machine, error) {
	return netsim.Run(ctx, s.sim, fmt.Sprintf("Failed to load machine with ID: %s", id), func() (*model.Machine, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if i := indexOf(s.machines, func(m model.Machine) bool { return m.ID == id }); i >= 0 {
			m := s.machines[i]
			return &m, nil
		}
		return nil, nil
	})
}

// CreateMachine stores a new machine. The referenced project must exist;
// dangling references are rejected instead of written.
func (s *Store) CreateMachine(ctx context.Context, m model.Machine) (model.Machine, error) {
	return netsim.Run(ctx, s.sim, "Failed to create machine", func() (model.Machine, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !s.projectExistsLocked(m.ProjectID) {
			return model.Machine{}, fmt.Errorf("machine references unknown project %q: %w", m.ProjectID, ErrInvalidReference)
		}

		t := now()
		m.ID = uuid.NewString()
		m.CreatedAt = t
		m.UpdatedAt = t
		s.machines = append(s.machines, m)
		s.persistLocked(ctx, persist.KeyMachines, s.machines)
		return m, nil
	})
}

// UpdateMachine merges the patch onto an existing machine. A patched
// projectId is validated against the project collection.
func (s *Store) UpdateMachine(ctx context.Context, id string, patch model.MachinePatch) (model.Machine, error) {
	return netsim.Run(ctx, s.sim, "Failed to update machine", func() (model.Machine, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.machines, func(m model.Machine) bool { return m.ID == id })
		if i < 0 {
			return model.Machine{}, fmt.Errorf("machine %q: %w", id, ErrNotFound)
		}

		m := s.machines[i]
		if patch.ProjectID != nil {
			if !s.projectExistsLocked(*patch.ProjectID) {
				return model.Machine{}, fmt.Errorf("machine references unknown project %q: %w", *patch.ProjectID, ErrInvalidReference)
			}
			m.ProjectID = *patch.ProjectID
		}
		if patch.Name != nil {
			m.Name = *patch.Name
		}
		if patch.Description != nil {
			m.Description = *patch.Description
		}
		if patch.Model != nil {
			m.Model = *patch.Model
		}
		if patch.SerialNumber != nil {
			m.SerialNumber = *patch.SerialNumber
		}
		if patch.Manufacturer != nil {
			m.Manufacturer = *patch.Manufacturer
		}
		if patch.YearOfManufacture != nil {
			m.YearOfManufacture = *patch.YearOfManufacture
		}
		if patch.Status != nil {
			m.Status = *patch.Status
		}
		if patch.LastMaintenanceDate != nil {
			m.LastMaintenanceDate = *patch.LastMaintenanceDate
		}
		m.UpdatedAt = now()
		s.machines[i] = m
		s.persistLocked(ctx, persist.KeyMachines, s.machines)
		return m, nil
	})
}

// DeleteMachine removes a machine. It reports false for an unknown id and
// never cascades to the machine's safety functions.
func (s *Store) DeleteMachine(ctx context.Context, id string) (bool, error) {
	return netsim.Run(ctx, s.sim, "Failed to delete machine", func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.machines, func(m model.Machine) bool { return m.ID == id })
		if i < 0 {
			return false, nil
		}
		s.machines = append(s.machines[:i], s.machines[i+1:]...)
		s.persistLocked(ctx, persist.KeyMachines, s.machines)
		return true, nil
	})
}

func (s *Store) machineExistsLocked(id string) bool {
	return indexOf(s.machines, func(m model.Machine) bool { return m.ID == id }) >= 0
}
