package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestAdapter opens a named in-memory SQLite database so each test gets
// its own isolated store that still survives across connections.
func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&CollectionRecord{}))
	return NewAdapter(db)
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	type item struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	adapter.SaveCollections(ctx, map[string]any{
		KeyProjects: []item{{ID: "1", Name: "Ligne A"}},
		KeyMachines: []item{{ID: "1", Name: "Robot 1"}, {ID: "2", Name: "Convoyeur A"}},
	})

	raw := adapter.Load(ctx)
	require.Contains(t, raw, KeyProjects)
	require.Contains(t, raw, KeyMachines)
	require.Contains(t, raw, KeyLastUpdated, "every save bumps the last-updated marker")

	var projects []item
	require.NoError(t, json.Unmarshal(raw[KeyProjects], &projects))
	assert.Equal(t, []item{{ID: "1", Name: "Ligne A"}}, projects)

	var machines []item
	require.NoError(t, json.Unmarshal(raw[KeyMachines], &machines))
	assert.Len(t, machines, 2)
}

func TestPartialSaveLeavesOtherKeysUntouched(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	adapter.SaveCollections(ctx, map[string]any{
		KeyProjects: []string{"a"},
		KeyUsers:    []string{"u"},
	})
	adapter.SaveCollections(ctx, map[string]any{
		KeyProjects: []string{"a", "b"},
	})

	raw := adapter.Load(ctx)
	assert.JSONEq(t, `["a","b"]`, string(raw[KeyProjects]))
	assert.JSONEq(t, `["u"]`, string(raw[KeyUsers]))
}

func TestUnknownKeysAreSkipped(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	adapter.SaveCollections(ctx, map[string]any{
		"bogus":     []string{"x"},
		KeyProjects: []string{"a"},
	})

	raw := adapter.Load(ctx)
	assert.NotContains(t, raw, "bogus")
	assert.Contains(t, raw, KeyProjects)
}

func TestHasDataAndClear(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	assert.False(t, adapter.HasData(ctx), "a fresh store has no data")

	adapter.SaveCollections(ctx, map[string]any{KeyProjects: []string{"a"}})
	assert.True(t, adapter.HasData(ctx))

	adapter.Clear(ctx)
	assert.False(t, adapter.HasData(ctx))
	assert.Empty(t, adapter.Load(ctx))
}

func TestUnencodableValueDoesNotPoisonOtherKeys(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	adapter.SaveCollections(ctx, map[string]any{
		KeyProjects: []string{"ok"},
		KeyMachines: func() {}, // not JSON-encodable, must be skipped with a log
	})

	raw := adapter.Load(ctx)
	assert.Contains(t, raw, KeyProjects)
	assert.NotContains(t, raw, KeyMachines)
}
