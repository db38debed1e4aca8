package config

import (
	"fmt"

	"nutrify-backend/internal/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func ConnectDB(cfg *utils.Config) (*gorm.DB, error) {
	// TranslateError maps the driver's unique-constraint violation to
	// gorm.ErrDuplicatedKey, which Register relies on to report a
	// duplicate email when two signups race past the pre-check.
	db, err := gorm.Open(sqlite.Open(cfg.DBFile), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
