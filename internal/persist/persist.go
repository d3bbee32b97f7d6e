package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/ntexier-belenos/Sistema-Cloud/config"
)

// Storage keys, one per collection. Values are JSON-encoded arrays except
// KeyLastUpdated, which holds an RFC 3339 timestamp string.
const (
	KeyProjects        = "projects"
	KeyMachines        = "machines"
	KeySafetyFunctions = "safetyFunctions"
	KeySubComponents   = "subComponents"
	KeyUsers           = "users"
	KeyDashboardStats  = "dashboardStats"
	KeyLastUpdated     = "lastUpdated"
)

// CollectionRecord is one named collection serialized as a JSON blob.
type CollectionRecord struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Data      []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Init opens the durable store and runs migrations. The driver is chosen from
// the configuration; sqlite is the default for local single-user use.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&CollectionRecord{}); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	return db, nil
}

// Adapter persists named collections across restarts. It deliberately never
// returns storage errors from writes: in-memory state stays authoritative and
// a failed write only degrades durability. Failures are logged.
type Adapter struct {
	db *gorm.DB
}

// NewAdapter creates an adapter on top of an initialized database handle.
func NewAdapter(db *gorm.DB) *Adapter {
	return &Adapter{db: db}
}

// SaveCollections serializes each named value and upserts it under its key,
// then bumps the shared last-updated marker. Unknown keys are skipped.
func (a *Adapter) SaveCollections(ctx context.Context, collections map[string]any) {
	for key, value := range collections {
		if !knownKey(key) {
			log.Printf("persist: skipping unknown collection key %q", key)
			continue
		}
		data, err := json.Marshal(value)
		if err != nil {
			log.Printf("persist: failed to encode collection %q: %v", key, err)
			continue
		}
		if err := a.upsert(ctx, key, data); err != nil {
			log.Printf("persist: failed to save collection %q: %v", key, err)
		}
	}

	stamp, err := json.Marshal(time.Now().UTC().Format(time.RFC3339))
	if err == nil {
		err = a.upsert(ctx, KeyLastUpdated, stamp)
	}
	if err != nil {
		log.Printf("persist: failed to update %s: %v", KeyLastUpdated, err)
	}
}

func (a *Adapter) upsert(ctx context.Context, key string, data []byte) error {
	record := CollectionRecord{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
}

// Load reads every stored collection and returns the raw payloads by key.
// Keys that were never written are simply absent. On total failure an empty
// map is returned so callers fall back to their defaults.
func (a *Adapter) Load(ctx context.Context) map[string]json.RawMessage {
	var records []CollectionRecord
	if err := a.db.WithContext(ctx).Find(&records).Error; err != nil {
		log.Printf("persist: failed to load collections: %v", err)
		return map[string]json.RawMessage{}
	}

	out := make(map[string]json.RawMessage, len(records))
	for _, r := range records {
		out[r.Key] = json.RawMessage(r.Data)
	}
	return out
}

// Clear removes every stored collection, including the last-updated marker.
func (a *Adapter) Clear(ctx context.Context) {
	if err := a.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&CollectionRecord{}).Error; err != nil {
		log.Printf("persist: failed to clear collections: %v", err)
	}
}

// HasData reports whether the store has ever been written to, keyed off the
// presence of the last-updated marker. Used at startup to decide between
// seeding fixtures and hydrating.
func (a *Adapter) HasData(ctx context.Context) bool {
	var count int64
	if err := a.db.WithContext(ctx).
		Model(&CollectionRecord{}).
		Where("key = ?", KeyLastUpdated).
		Count(&count).Error; err != nil {
		log.Printf("persist: failed to check for data: %v", err)
		return false
	}
	return count > 0
}

func knownKey(key string) bool {
	switch key {
	case KeyProjects, KeyMachines, KeySafetyFunctions, KeySubComponents,
		KeyUsers, KeyDashboardStats:
		return true
	}
	return false
}
