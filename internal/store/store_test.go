package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntexier-belenos/Sistema-Cloud/config"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/model"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/netsim"
	"github.com/ntexier-belenos/Sistema-Cloud/internal/persist"
)

// newTestAdapter opens an isolated named in-memory SQLite database.
func newTestAdapter(t *testing.T) *persist.Adapter {
	t.Helper()

	db, err := persist.Init(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	return persist.NewAdapter(db)
}

// newTestStore opens a fixture-seeded store with the simulator disabled, so
// operations run synchronously and never fail at random.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(context.Background(), newTestAdapter(t), netsim.New(netsim.Config{}), DefaultFixtures())
}

// seedMachineUnchecked appends a machine without foreign-key validation, to
// fabricate the dangling references the write path refuses to create.
func seedMachineUnchecked(s *Store, m model.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines = append(s.machines, m)
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3, "fixtures seed three projects")

	created, err := s.CreateProject(ctx, model.Project{Name: "Nouvelle ligne", Description: "desc"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := s.Project(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Nouvelle ligne", got.Name)

	name := "Renamed"
	updated, err := s.UpdateProject(ctx, created.ID, model.ProjectPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "createdAt never moves on update")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	deleted, err := s.DeleteProject(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting again is a no-op, not an error.
	deleted, err = s.DeleteProject(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err = s.Project(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "reads of unknown ids return nil, not an error")
}

func TestUpdateUnknownProjectIsNotFound(t *testing.T) {
	s := newTestStore(t)

	name := "x"
	_, err := s.UpdateProject(context.Background(), "no-such-id", model.ProjectPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateMachineValidatesProjectReference(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateMachine(ctx, model.Machine{
		ProjectID: "no-such-project",
		Name:      "Orphan",
		Status:    model.StatusOperational,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)

	// Patching a machine onto an unknown project is rejected the same way.
	badID := "no-such-project"
	_, err = s.UpdateMachine(ctx, "1", model.MachinePatch{ProjectID: &badID})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestMachineProjectFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	all, err := s.Machines(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	ofProject, err := s.Machines(ctx, "1")
	require.NoError(t, err)
	require.Len(t, ofProject, 2)
	for _, m := range ofProject {
		assert.Equal(t, "1", m.ProjectID)
	}
}

func TestDeleteProjectDoesNotCascade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	deleted, err := s.DeleteProject(ctx, "1")
	require.NoError(t, err)
	require.True(t, deleted)

	// The project's two machines survive with their now-dangling reference.
	orphans, err := s.Machines(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, orphans, 2)

	report, err := s.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Len(t, report.InvalidMachines, 2)
}

func TestSafetyFunctionReferenceValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateSafetyFunction(ctx, model.SafetyFunction{
		MachineID:  "no-such-machine",
		Name:       "Orphan",
		PLRequired: model.PLd,
		Status:     model.SFStatusDraft,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)

	created, err := s.CreateSafetyFunction(ctx, model.SafetyFunction{
		MachineID:  "2",
		Name:       "Interverrouillage",
		PLRequired: model.PLc,
		Status:     model.SFStatusDraft,
	})
	require.NoError(t, err)

	_, err = s.CreateSubComponent(ctx, model.SubComponent{
		SafetyFunctionID: created.ID,
		Name:             "Capteur de porte",
		Type:             model.TypeSensor,
	})
	require.NoError(t, err)

	_, err = s.CreateSubComponent(ctx, model.SubComponent{
		SafetyFunctionID: "no-such-sf",
		Name:             "Orphan",
		Type:             model.TypeSensor,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestPersistenceSurvivesReopen(t *testing.T) {
	adapter := newTestAdapter(t)
	sim := netsim.New(netsim.Config{})
	ctx := context.Background()

	s := Open(ctx, adapter, sim, DefaultFixtures())
	created, err := s.CreateProject(ctx, model.Project{Name: "Durable"})
	require.NoError(t, err)
	_, err = s.DeleteProject(ctx, "3")
	require.NoError(t, err)

	// A second store over the same durable storage sees the mutations, not
	// the fixtures.
	reopened := Open(ctx, adapter, sim, DefaultFixtures())
	projects, err := reopened.Projects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 3) // 3 fixtures - 1 deleted + 1 created

	got, err := reopened.Project(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Durable", got.Name)

	gone, err := reopened.Project(ctx, "3")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMalformedStoredCollectionKeepsFixtures(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	// A JSON string is valid JSON but not a project array, so hydration must
	// fall back to the fixtures for that key.
	adapter.SaveCollections(ctx, map[string]any{persist.KeyProjects: "garbage"})

	s := Open(ctx, adapter, netsim.New(netsim.Config{}), DefaultFixtures())
	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 3)
}

func TestResetToDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateProject(ctx, model.Project{Name: "Doomed"})
	require.NoError(t, err)
	_, err = s.DeleteMachine(ctx, "4")
	require.NoError(t, err)

	s.ResetToDefaults(ctx)

	projects, err := s.Projects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 3)

	machines, err := s.Machines(ctx, "")
	require.NoError(t, err)
	assert.Len(t, machines, 4)
}

func TestDashboardStats(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Projects.Total)
	assert.Equal(t, 3, stats.Projects.Active)
	assert.Equal(t, 0, stats.Projects.Archived)
	assert.Equal(t, 1, stats.Projects.ByStatus.InProgress)

	assert.Equal(t, 4, stats.Machines.Total)
	assert.Equal(t, 1, stats.Machines.ByRisk.Low)
	assert.Equal(t, 1, stats.Machines.ByRisk.Medium)
	assert.Equal(t, 0, stats.Machines.ByRisk.High)

	// Fixtures: e/e and d/d are compliant, d with no achieved PL is not.
	assert.Equal(t, 3, stats.SafetyFunctions.Total)
	assert.Equal(t, 2, stats.SafetyFunctions.ByStatus.Compliant)
	assert.Equal(t, 1, stats.SafetyFunctions.ByStatus.NonCompliant)
	assert.Equal(t, 2, stats.SafetyFunctions.ByPL.D)
	assert.Equal(t, 1, stats.SafetyFunctions.ByPL.E)
}

func TestPLMeetsOrdering(t *testing.T) {
	testCases := []struct {
		name     string
		achieved *string
		required string
		want     bool
	}{
		{"exact match", ptr(model.PLd), model.PLd, true},
		{"exceeds", ptr(model.PLe), model.PLd, true},
		{"falls short", ptr(model.PLc), model.PLd, false},
		{"not assessed", nil, model.PLa, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, model.PLMeets(tc.achieved, tc.required))
		})
	}
}

func TestLoginAndRegister(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("login with known email and mock password", func(t *testing.T) {
		session, err := s.Login(ctx, "admin@example.com", "password")
		require.NoError(t, err)
		assert.Contains(t, session.AccessToken, "mock-")
		assert.Equal(t, "bearer", session.TokenType)
		assert.Equal(t, "admin@example.com", session.User.Email)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := s.Login(ctx, "admin@example.com", "hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, err := s.Login(ctx, "nobody@example.com", "password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("register creates a user-role account", func(t *testing.T) {
		session, err := s.Register(ctx, RegisterInput{
			Email:     "new@example.com",
			Password:  "irrelevant",
			FirstName: "New",
			LastName:  "User",
		})
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, session.User.Role)

		users, err := s.Users(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 4)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := s.Register(ctx, RegisterInput{Email: "admin@example.com"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestCheckConsistencyFindsDanglingReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	report, err := s.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, report.Clean(), "fixtures are internally consistent")

	seedMachineUnchecked(s, model.Machine{
		ID:        "orphan-1",
		ProjectID: "no-such-project",
		Name:      "Machine fantôme",
	})

	report, err = s.CheckConsistency(ctx)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	require.Len(t, report.InvalidMachines, 1)
	assert.Equal(t, "orphan-1", report.InvalidMachines[0].ID)
	assert.Equal(t, "projectId", report.InvalidMachines[0].Field)
	assert.Equal(t, "no-such-project", report.InvalidMachines[0].Value)
}

func TestSimulatedFailureSurfacesToCaller(t *testing.T) {
	sim := netsim.New(netsim.Config{
		Enabled: true,
		Errors:  netsim.ErrorsConfig{Enabled: true, Probability: 1},
	})
	s := Open(context.Background(), newTestAdapter(t), sim, DefaultFixtures())

	_, err := s.Projects(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to load projects", err.Error())
}

func TestOperationsHonorContext(t *testing.T) {
	sim := netsim.New(netsim.Config{
		Enabled: true,
		Latency: netsim.LatencyConfig{Enabled: true, MinMs: 500, MaxMs: 600},
	})
	s := Open(context.Background(), newTestAdapter(t), sim, DefaultFixtures())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.Projects(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
