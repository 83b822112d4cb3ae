package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
)

// DailyOrderCounter is the counter backing human-facing order numbers.
// The number restarts at 1 every local calendar day, so it is only unique
// within one day.
const DailyOrderCounter = "dailyOrderNumber"

type CounterService struct {
	db *gorm.DB
}

func NewCounterService(db *gorm.DB) *CounterService {
	return &CounterService{db: db}
}

// Next returns the next value of the named counter, resetting it first if
// the stored day differs from today. The whole step runs in one
// transaction and the increment is a single UPDATE .. value = value + 1,
// so concurrent callers can never observe the same value.
func (s *CounterService) Next(name string) (int64, error) {
	var value int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.ensureCounter(tx, name); err != nil {
			return err
		}

		// Day-boundary reset. No-op when last_reset is already today.
		startOfDay := startOfLocalDay(time.Now())
		if err := tx.Model(&models.Counter{}).
			Where("name = ? AND last_reset < ?", name, startOfDay).
			Updates(map[string]interface{}{
				"value":      0,
				"last_reset": time.Now(),
			}).Error; err != nil {
			return err
		}

		// Atomic increment; the row lock is held until commit.
		if err := tx.Model(&models.Counter{}).
			Where("name = ?", name).
			UpdateColumn("value", gorm.Expr("value + ?", 1)).Error; err != nil {
			return err
		}

		var counter models.Counter
		if err := tx.Where("name = ?", name).First(&counter).Error; err != nil {
			return err
		}
		value = counter.Value
		return nil
	})

	return value, err
}

// ensureCounter lazily creates the counter row. A concurrent create loses
// to the unique index on name and is treated as success.
func (s *CounterService) ensureCounter(tx *gorm.DB, name string) error {
	var counter models.Counter
	err := tx.Where("name = ?", name).First(&counter).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	counter = models.Counter{Name: name, Value: 0, LastReset: time.Now()}
	if err := tx.Create(&counter).Error; err != nil {
		// Someone else inserted first; make sure the row is there.
		var existing models.Counter
		if err2 := tx.Where("name = ?", name).First(&existing).Error; err2 != nil {
			return err
		}
	}
	return nil
}

func startOfLocalDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
