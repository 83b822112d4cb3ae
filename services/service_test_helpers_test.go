package services

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hossamfarhan/patisserie-app/models"
	"github.com/hossamfarhan/patisserie-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// newTestDB opens an in-memory SQLite database limited to one connection,
// so an in-memory database is shared and transactions serialize the same
// way MySQL row locks do.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.StoreAddress{},
		&models.UserAddress{},
		&models.Product{},
		&models.Order{},
		&models.CartItem{},
		&models.Payment{},
		&models.CanceledDriver{},
		&models.Counter{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

var userSeq uint64

func seedUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	seq := atomic.AddUint64(&userSeq, 1)
	user := models.User{
		Name:     "Test " + role,
		Email:    fmt.Sprintf("%s-%d@example.com", role, seq),
		Password: "hashed",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, title string, price float64) models.Product {
	t.Helper()
	product := models.Product{Title: title, Price: price}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}
