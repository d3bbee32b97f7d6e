package store

import (
	"context"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
)

// ReferenceIssue describes one entity whose foreign key points at a parent
// that does not exist.
type ReferenceIssue struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// ConsistencyReport lists every dangling reference in the current
// collections. Deletes do not cascade, so dangling references are expected
// after deleting a parent; this report makes them observable.
type ConsistencyReport struct {
	InvalidMachines        []ReferenceIssue `json:"invalid_machines"`
	InvalidSafetyFunctions []ReferenceIssue `json:"invalid_safety_functions"`
	InvalidSubComponents   []ReferenceIssue `json:"invalid_sub_components"`
}

// Clean reports whether no dangling references were found.
func (r ConsistencyReport) Clean() bool {
	return len(r.InvalidMachines) == 0 &&
		len(r.InvalidSafetyFunctions) == 0 &&
		len(r.InvalidSubComponents) == 0
}

// CheckConsistency scans every child collection for references to missing
// parents.
func (s *Store) CheckConsistency(ctx context.Context) (ConsistencyReport, error) {
	return netsim.Run(ctx, s.sim, "Failed to check data consistency", func() (ConsistencyReport, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		report := ConsistencyReport{
			InvalidMachines:        []ReferenceIssue{},
			InvalidSafetyFunctions: []ReferenceIssue{},
			InvalidSubComponents:   []ReferenceIssue{},
		}

		projectIDs := make(map[string]struct{}, len(s.projects))
		for _, p := range s.projects {
			projectIDs[p.ID] = struct{}{}
		}
		machineIDs := make(map[string]struct{}, len(s.machines))
		for _, m := range s.machines {
			machineIDs[m.ID] = struct{}{}
		}
		sfIDs := make(map[string]struct{}, len(s.safetyFunctions))
		for _, sf := range s.safetyFunctions {
			sfIDs[sf.ID] = struct{}{}
		}

		for _, m := range s.machines {
			if _, ok := projectIDs[m.ProjectID]; !ok {
				report.InvalidMachines = append(report.InvalidMachines, ReferenceIssue{
					ID: m.ID, Name: m.Name, Field: "projectId", Value: m.ProjectID,
				})
			}
		}
		for _, sf := range s.safetyFunctions {
			if _, ok := machineIDs[sf.MachineID]; !ok {
				report.InvalidSafetyFunctions = append(report.InvalidSafetyFunctions, ReferenceIssue{
					ID: sf.ID, Name: sf.Name, Field: "machineId", Value: sf.MachineID,
				})
			}
		}
		for _, sc := range s.subComponents {
			if _, ok := sfIDs[sc.SafetyFunctionID]; !ok {
				report.InvalidSubComponents = append(report.InvalidSubComponents, ReferenceIssue{
					ID: sc.ID, Name: sc.Name, Field: "safetyFunctionId", Value: sc.SafetyFunctionID,
				})
			}
		}

		return report, nil
	})
}
