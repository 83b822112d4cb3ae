package models

import (
	"time"
)

// Counter is a singleton-per-name sequence row. The daily order number
// counter resets to zero at each local day boundary; see
// services.CounterService for the increment contract.
type Counter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	LastReset time.Time `gorm:"not null" json:"last_reset"`
}
