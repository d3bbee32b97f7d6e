package data

import (
	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
)

// Derived lookups. All of them are pure reads over the current local state:
// no store call, no simulated network, no error path.

// Projects returns the current project collection.
func (c *Context) Projects() []model.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloned(c.projects.value)
}

// Project returns the project with the given id from local state, or nil.
func (c *Context) Project(id string) *model.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return firstMatch(c.projects.value, func(p model.Project) bool { return p.ID == id })
}

// Machines returns the current machine collection.
func (c *Context) Machines() []model.Machine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloned(c.machines.value)
}

// Machine returns the machine with the given id from local state, or nil.
func (c *Context) Machine(id string) *model.Machine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return firstMatch(c.machines.value, func(m model.Machine) bool { return m.ID == id })
}

// ProjectMachines returns the machines belonging to one project.
func (c *Context) ProjectMachines(projectID string) []model.Machine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return matching(c.machines.value, func(m model.Machine) bool { return m.ProjectID == projectID })
}

// SafetyFunctions returns the current safety-function collection.
func (c *Context) SafetyFunctions() []model.SafetyFunction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloned(c.safetyFunctions.value)
}

// SafetyFunction returns the safety function with the given id, or nil.
func (c *Context) SafetyFunction(id string) *model.SafetyFunction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return firstMatch(c.safetyFunctions.value, func(sf model.SafetyFunction) bool { return sf.ID == id })
}

// MachineSafetyFunctions returns the safety functions of one machine.
func (c *Context) MachineSafetyFunctions(machineID string) []model.SafetyFunction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return matching(c.safetyFunctions.value, func(sf model.SafetyFunction) bool { return sf.MachineID == machineID })
}

// SubComponents returns the current sub-component collection.
func (c *Context) SubComponents() []model.SubComponent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloned(c.subComponents.value)
}

// SubComponent returns the sub-component with the given id, or nil.
func (c *Context) SubComponent(id string) *model.SubComponent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return firstMatch(c.subComponents.value, func(sc model.SubComponent) bool { return sc.ID == id })
}

// SafetyFunctionSubComponents returns the sub-components of one safety
// function.
func (c *Context) SafetyFunctionSubComponents(safetyFunctionID string) []model.SubComponent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return matching(c.subComponents.value, func(sc model.SubComponent) bool { return sc.SafetyFunctionID == safetyFunctionID })
}

// Users returns the current user collection.
func (c *Context) Users() []model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloned(c.users)
}

// Dashboard returns the latest dashboard stats, or nil before the first
// successful refresh.
func (c *Context) Dashboard() *model.DashboardStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.dashboard.value == nil {
		return nil
	}
	stats := *c.dashboard.value
	return &stats
}

func cloned[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func firstMatch[T any](items []T, match func(T) bool) *T {
	for i := range items {
		if match(items[i]) {
			item := items[i]
			return &item
		}
	}
	return nil
}

func matching[T any](items []T, match func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}
