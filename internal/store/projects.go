package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
)

// Projects returns all projects.
func (s *Store) Projects(ctx context.Context) ([]model.Project, error) {
	return netsim.Run(ctx, s.sim, "Failed to load projects", func() ([]model.Project, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return cloneOrEmpty(s.projects), nil
	})
}

// Project returns the project with the given id, or nil if there is none.
func (s *Store) Project(ctx context.Context, id string) (*model.Project, error) {
	return netsim.Run(ctx, s.sim, fmt.Sprintf("Failed to load project with ID: %s", id), func() (*model.Project, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if i := indexOf(s.projects, func(p model.Project) bool { return p.ID == id }); i >= 0 {
			p := s.projects[i]
			return &p, nil
		}
		return nil, nil
	})
}

// CreateProject stores a new project. The id and timestamps are assigned
// here; any values on the input are ignored.
func (s *Store) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	return netsim.Run(ctx, s.sim, "Failed to create project", func() (model.Project, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		t := now()
		p.ID = uuid.NewString()
		p.CreatedAt = t
		p.UpdatedAt = t
		s.projects = append(s.projects, p)
		s.persistLocked(ctx, persist.KeyProjects, s.projects)
		return p, nil
	})
}

// UpdateProject merges the patch onto an existing project and bumps its
// updatedAt. Updating an unknown id is an error.
func (s *Store) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	return netsim.Run(ctx, s.sim, "Failed to update project", func() (model.Project, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.projects, func(p model.Project) bool { return p.ID == id })
		if i < 0 {
			return model.Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
		}

		p := s.projects[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		p.UpdatedAt = now()
		s.projects[i] = p
		s.persistLocked(ctx, persist.KeyProjects, s.projects)
		return p, nil
	})
}

// DeleteProject removes a project. It reports false, not an error, for an
// unknown id, and never cascades to the project's machines.
func (s *Store) DeleteProject(ctx context.Context, id string) (bool, error) {
	return netsim.Run(ctx, s.sim, "Failed to delete project", func() (bool, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		i := indexOf(s.projects, func(p model.Project) bool { return p.ID == id })
		if i < 0 {
			return false, nil
		}
		s.projects = append(s.projects[:i], s.projects[i+1:]...)
		s.persistLocked(ctx, persist.KeyProjects, s.projects)
		return true, nil
	})
}

func (s *Store) projectExistsLocked(id string) bool {
	return indexOf(s.projects, func(p model.Project) bool { return p.ID == id }) >= 0
}
