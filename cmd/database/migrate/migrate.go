package migration

import (
	"fmt"
	"time"

	"nutrify-backend/entities"

	"gorm.io/gorm"
)

type (
	// Migration is one versioned schema step, applied at most once and
	// never destructive.
	Migration struct {
		ID string
		Up func(*gorm.DB) error
	}

	MigrationRecord struct {
		ID        string    `gorm:"primaryKey"`
		AppliedAt time.Time `gorm:"autoCreateTime"`
	}
)

// registry is ordered; new migrations go at the end with a higher ID.
var registry = []Migration{
	{
		ID: "202408010001_create_users_and_scans",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&entities.User{}, &entities.Scan{})
		},
	},
}

// Migrate applies all pending migrations in order, recording each one in
// the migration_records table so reruns are no-ops.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var applied []MigrationRecord
	if err := db.Find(&applied).Error; err != nil {
		return fmt.Errorf("reading applied migrations: %w", err)
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, record := range applied {
		appliedSet[record.ID] = true
	}

	for _, m := range registry {
		if appliedSet[m.ID] {
			continue
		}
		if err := m.Up(db); err != nil {
			return fmt.Errorf("running migration %s: %w", m.ID, err)
		}
		if err := db.Create(&MigrationRecord{ID: m.ID}).Error; err != nil {
			return fmt.Errorf("recording migration %s: %w", m.ID, err)
		}
	}

	return nil
}
