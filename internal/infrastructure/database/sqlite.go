package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// File databases run in WAL mode. Immediate transactions take the write
// lock when they begin and wait up to the busy timeout for it, instead of
// failing when a reader tries to upgrade.
const sqliteFileParams = "_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

// NewSQLiteDB opens a SQLite database for single-machine installs and
// tests. Pass ":memory:" for a throwaway database.
func NewSQLiteDB(path string, debug bool) (*gorm.DB, error) {
	inMemory := isMemoryPath(path)
	dsn := path
	if !inMemory && !strings.Contains(path, "?") {
		dsn = path + "?" + sqliteFileParams
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if inMemory {
		// each connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	}

	log.Printf("Using SQLite database at %s", path)
	return db, nil
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory") || strings.HasPrefix(path, "file::memory:")
}
