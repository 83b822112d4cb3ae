package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	dbMu sync.RWMutex
	db   *gorm.DB
)

// InitDB stores the process-wide database handle used by handler-level
// lookups. Tests swap in their own per-test handle.
func InitDB(database *gorm.DB) {
	dbMu.Lock()
	defer dbMu.Unlock()
	db = database
}

// GetDB returns the handle set by InitDB.
func GetDB() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}
