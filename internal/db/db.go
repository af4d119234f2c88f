package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ciprianm/pontaj/internal/models"
)

var DB *gorm.DB

// Initialize sets up the database connection and runs migrations. An empty
// path falls back to ~/.pontaj/pontaj.db.
func Initialize(path string) error {
	if path == "" {
		var err error
		path, err = defaultDatabasePath()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Open database connection
	db, err := Open(path)
	if err != nil {
		return err
	}

	DB = db
	return nil
}

// Open connects to the SQLite file at path, applies the WAL/pressure
// pragmas and runs migrations. Use ":memory:" for tests.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single writer by construction; also keeps ":memory:" databases,
	// which exist per connection, on one connection.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	applyPragmas(db)

	if err := db.AutoMigrate(&models.Session{}, &models.WarnCount{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// defaultDatabasePath returns the path to the SQLite database file
func defaultDatabasePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".pontaj", "pontaj.db"), nil
}

// applyPragmas keeps WAL growth and temp I/O bounded. Failures are ignored;
// the store works without them, just with worse disk behavior.
func applyPragmas(db *gorm.DB) {
	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA wal_autocheckpoint=1000;",
		"PRAGMA journal_size_limit=10485760;",
		"PRAGMA temp_store=MEMORY;",
		"PRAGMA auto_vacuum=INCREMENTAL;",
	} {
		db.Exec(p)
	}
}

// Maintain truncates the WAL and vacuums the database, reclaiming disk
// space. Also the recovery step for "disk is full" write failures.
func Maintain(db *gorm.DB) error {
	if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE);").Error; err != nil {
		return err
	}
	return db.Exec("VACUUM;").Error
}

// Stats describes the database file's page accounting.
type Stats struct {
	SizeBytes int64
	FreeBytes int64
	PageSize  int64
}

// FileStats reads page counts for operational reporting.
func FileStats(db *gorm.DB) (Stats, error) {
	var pages, pageSize, freePages int64
	if err := db.Raw("PRAGMA page_count").Scan(&pages).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Raw("PRAGMA page_size").Scan(&pageSize).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Raw("PRAGMA freelist_count").Scan(&freePages).Error; err != nil {
		return Stats{}, err
	}
	return Stats{
		SizeBytes: pages * pageSize,
		FreeBytes: freePages * pageSize,
		PageSize:  pageSize,
	}, nil
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
