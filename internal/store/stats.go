package store

import (
	"context"

	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
)

// DashboardStats computes the dashboard counters from the current
// collections. The project status split and the machine risk buckets are
// fixed proportions of the totals, pending a real business definition; the
// safety-function compliance split is derived from achieved vs required PL.
func (s *Store) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	return netsim.Run(ctx, s.sim, "Failed to load dashboard stats", func() (model.DashboardStats, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()

		nProjects := len(s.projects)
		nMachines := len(s.machines)

		stats := model.DashboardStats{
			Projects: model.ProjectStats{
				Total:    nProjects,
				Active:   nProjects,
				Archived: 0,
				ByStatus: model.ProjectStatusBuckets{
					Draft:      nProjects * 3 / 10,
					InProgress: nProjects * 5 / 10,
					Completed:  nProjects * 2 / 10,
					Archived:   0,
				},
			},
			Machines: model.MachineStats{
				Total: nMachines,
				ByRisk: model.RiskBuckets{
					Low:    nMachines * 4 / 10,
					Medium: nMachines * 4 / 10,
					High:   nMachines * 2 / 10,
				},
			},
		}

		stats.SafetyFunctions.Total = len(s.safetyFunctions)
		for _, sf := range s.safetyFunctions {
			if model.PLMeets(sf.PLAchieved, sf.PLRequired) {
				stats.SafetyFunctions.ByStatus.Compliant++
			} else {
				stats.SafetyFunctions.ByStatus.NonCompliant++
			}
			switch sf.PLRequired {
			case model.PLa:
				stats.SafetyFunctions.ByPL.A++
			case model.PLb:
				stats.SafetyFunctions.ByPL.B++
			case model.PLc:
				stats.SafetyFunctions.ByPL.C++
			case model.PLd:
				stats.SafetyFunctions.ByPL.D++
			case model.PLe:
				stats.SafetyFunctions.ByPL.E++
			}
		}

		return stats, nil
	})
}
