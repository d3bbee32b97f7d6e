package data

import (
	"context"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
)

// Mutations. Every one of them goes through the store first, so the change is
// persisted before local state moves; the local apply then avoids a full
// re-fetch. Failures are returned to the caller.

// CreateProject creates a project in the store and appends it locally.
func (c *Context) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	created, err := c.store.CreateProject(ctx, p)
	if err != nil {
		return model.Project{}, err
	}
	c.mu.Lock()
	c.projects.value = append(c.projects.value, created)
	c.mu.Unlock()
	c.notify()
	return created, nil
}

// UpdateProject updates a project in the store and replaces it locally.
func (c *Context) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	updated, err := c.store.UpdateProject(ctx, id, patch)
	if err != nil {
		return model.Project{}, err
	}
	c.mu.Lock()
	c.projects.value = replaceWhere(c.projects.value, func(p model.Project) bool { return p.ID == id }, updated)
	c.mu.Unlock()
	c.notify()
	return updated, nil
}

// DeleteProject deletes a project from the store and splices it out locally.
func (c *Context) DeleteProject(ctx context.Context, id string) (bool, error) {
	deleted, err := c.store.DeleteProject(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	c.mu.Lock()
	c.projects.value = removeWhere(c.projects.value, func(p model.Project) bool { return p.ID == id })
	c.mu.Unlock()
	c.notify()
	return true, nil
}

// CreateMachine creates a machine in the store and appends it locally.
func (c *Context) CreateMachine(ctx context.Context, m model.Machine) (model.Machine, error) {
	created, err := c.store.CreateMachine(ctx, m)
	if err != nil {
		return model.Machine{}, err
	}
	c.mu.Lock()
	c.machines.value = append(c.machines.value, created)
	c.mu.Unlock()
	c.notify()
	return created, nil
}

// UpdateMachine updates a machine in the store and replaces it locally.
func (c *Context) UpdateMachine(ctx context.Context, id string, patch model.MachinePatch) (model.Machine, error) {
	updated, err := c.store.UpdateMachine(ctx, id, patch)
	if err != nil {
		return model.Machine{}, err
	}
	c.mu.Lock()
	c.machines.value = replaceWhere(c.machines.value, func(m model.Machine) bool { return m.ID == id }, updated)
	c.mu.Unlock()
	c.notify()
	return updated, nil
}

// DeleteMachine deletes a machine from the store and splices it out locally.
func (c *Context) DeleteMachine(ctx context.Context, id string) (bool, error) {
	deleted, err := c.store.DeleteMachine(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	c.mu.Lock()
	c.machines.value = removeWhere(c.machines.value, func(m model.Machine) bool { return m.ID == id })
	c.mu.Unlock()
	c.notify()
	return true, nil
}

// CreateSafetyFunction creates a safety function in the store and appends it
// locally.
func (c *Context) CreateSafetyFunction(ctx context.Context, sf model.SafetyFunction) (model.SafetyFunction, error) {
	created, err := c.store.CreateSafetyFunction(ctx, sf)
	if err != nil {
		return model.SafetyFunction{}, err
	}
	c.mu.Lock()
	c.safetyFunctions.value = append(c.safetyFunctions.value, created)
	c.mu.Unlock()
	c.notify()
	return created, nil
}

// UpdateSafetyFunction updates a safety function in the store and replaces it
// locally.
func (c *Context) UpdateSafetyFunction(ctx context.Context, id string, patch model.SafetyFunctionPatch) (model.SafetyFunction, error) {
	updated, err := c.store.UpdateSafetyFunction(ctx, id, patch)
	if err != nil {
		return model.SafetyFunction{}, err
	}
	c.mu.Lock()
	c.safetyFunctions.value = replaceWhere(c.safetyFunctions.value, func(sf model.SafetyFunction) bool { return sf.ID == id }, updated)
	c.mu.Unlock()
	c.notify()
	return updated, nil
}

// DeleteSafetyFunction deletes a safety function from the store and splices
// it out locally.
func (c *Context) DeleteSafetyFunction(ctx context.Context, id string) (bool, error) {
	deleted, err := c.store.DeleteSafetyFunction(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	c.mu.Lock()
	c.safetyFunctions.value = removeWhere(c.safetyFunctions.value, func(sf model.SafetyFunction) bool { return sf.ID == id })
	c.mu.Unlock()
	c.notify()
	return true, nil
}

// CreateSubComponent creates a sub-component in the store and appends it
// locally.
func (c *Context) CreateSubComponent(ctx context.Context, sc model.SubComponent) (model.SubComponent, error) {
	created, err := c.store.CreateSubComponent(ctx, sc)
	if err != nil {
		return model.SubComponent{}, err
	}
	c.mu.Lock()
	c.subComponents.value = append(c.subComponents.value, created)
	c.mu.Unlock()
	c.notify()
	return created, nil
}

// UpdateSubComponent updates a sub-component in the store and replaces it
// locally.
func (c *Context) UpdateSubComponent(ctx context.Context, id string, patch model.SubComponentPatch) (model.SubComponent, error) {
	updated, err := c.store.UpdateSubComponent(ctx, id, patch)
	if err != nil {
		return model.SubComponent{}, err
	}
	c.mu.Lock()
	c.subComponents.value = replaceWhere(c.subComponents.value, func(sc model.SubComponent) bool { return sc.ID == id }, updated)
	c.mu.Unlock()
	c.notify()
	return updated, nil
}

// DeleteSubComponent deletes a sub-component from the store and splices it
// out locally.
func (c *Context) DeleteSubComponent(ctx context.Context, id string) (bool, error) {
	deleted, err := c.store.DeleteSubComponent(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	c.mu.Lock()
	c.subComponents.value = removeWhere(c.subComponents.value, func(sc model.SubComponent) bool { return sc.ID == id })
	c.mu.Unlock()
	c.notify()
	return true, nil
}

func replaceWhere[T any](items []T, match func(T) bool, v T) []T {
	for i := range items {
		if match(items[i]) {
			items[i] = v
			return items
		}
	}
	return append(items, v)
}

func removeWhere[T any](items []T, match func(T) bool) []T {
	for i := range items {
		if match(items[i]) {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}
