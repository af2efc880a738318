package service_test

import (
	"os"
	"testing"

	"shoppinglist-service/internal/model"
	"shoppinglist-service/internal/repository"
	"shoppinglist-service/pkg/config"
	"shoppinglist-service/prometheus"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "service_test"}})
	os.Exit(m.Run())
}

func serviceTestDB(t *testing.T) (*gorm.DB, *repository.GormRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Category{}, &model.Item{}, &model.ItemAvailability{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db, repository.NewGormRepository(db)
}

func seedCategory(t *testing.T, db *gorm.DB, name string) model.Category {
	t.Helper()
	category := model.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return category
}
