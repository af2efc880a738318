package repository_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"shoppinglist-service/internal/model"
	"shoppinglist-service/internal/repository"
	"shoppinglist-service/pkg/config"
	"shoppinglist-service/prometheus"

	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "repository_test"}})
	os.Exit(m.Run())
}

func repoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Category{}, &model.Item{}, &model.ItemAvailability{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) model.Category {
	t.Helper()
	category := model.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return category
}

func TestFindAbsentRowsReturnNil(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	category, err := repo.FindCategoryByID(ctx, 42)
	if err != nil {
		t.Fatalf("FindCategoryByID: %v", err)
	}
	if category != nil {
		t.Errorf("expected nil category, got %+v", category)
	}

	item, err := repo.FindItemByID(ctx, 42)
	if err != nil {
		t.Fatalf("FindItemByID: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil item, got %+v", item)
	}

	availability, err := repo.FindAvailabilityByItemID(ctx, 42)
	if err != nil {
		t.Fatalf("FindAvailabilityByItemID: %v", err)
	}
	if availability != nil {
		t.Errorf("expected nil availability, got %+v", availability)
	}
}

func TestItemExists_MatchesOnComparisonKey(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	food := seedCategory(t, db, "Food")
	household := seedCategory(t, db, "Household")

	if _, err := repo.InsertItem(ctx, "Milk", "milk", food.ID); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}

	exists, err := repo.ItemExists(ctx, food.ID, "milk")
	if err != nil {
		t.Fatalf("ItemExists: %v", err)
	}
	if !exists {
		t.Error("expected milk to exist in Food")
	}

	exists, err = repo.ItemExists(ctx, household.ID, "milk")
	if err != nil {
		t.Fatalf("ItemExists: %v", err)
	}
	if exists {
		t.Error("milk should not exist in Household")
	}
}

func TestInsertItem_DuplicateKeyFailsOnConstraint(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	food := seedCategory(t, db, "Food")
	if _, err := repo.InsertItem(ctx, "Milk", "milk", food.ID); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	// A race loser that slipped past the app-level check must fail here
	if _, err := repo.InsertItem(ctx, "MILK", "milk", food.ID); err == nil {
		t.Fatal("expected unique constraint violation, got nil")
	}
}

func TestListItemsByNamePrefix_OrderAndLimit(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	food := seedCategory(t, db, "Food")
	for _, name := range []string{"Bread", "Butter", "Banana"} {
		if _, err := repo.InsertItem(ctx, name, strings.ToLower(name), food.ID); err != nil {
			t.Fatalf("InsertItem %s: %v", name, err)
		}
	}

	items, err := repo.ListItemsByNamePrefix(ctx, "b", 2)
	if err != nil {
		t.Fatalf("ListItemsByNamePrefix: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Banana" || items[1].Name != "Bread" {
		t.Errorf("expected name-ordered [Banana Bread], got [%s %s]", items[0].Name, items[1].Name)
	}
	if items[0].Category == nil || items[0].Category.Name != "Food" {
		t.Errorf("expected Category preloaded as Food, got %+v", items[0].Category)
	}

	items, err = repo.ListItemsByNamePrefix(ctx, "butt", 10)
	if err != nil {
		t.Fatalf("ListItemsByNamePrefix: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Butter" {
		t.Fatalf("expected [Butter], got %+v", items)
	}
}

func TestListItemsByNamePrefix_WildcardsMatchLiterally(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	food := seedCategory(t, db, "Food")
	for _, name := range []string{"Milk", "Bread", "100% Juice", "a_b Spice"} {
		if _, err := repo.InsertItem(ctx, name, strings.ToLower(name), food.ID); err != nil {
			t.Fatalf("InsertItem %s: %v", name, err)
		}
	}

	// LIKE metacharacters in the prefix must not act as wildcards
	items, err := repo.ListItemsByNamePrefix(ctx, "%", 10)
	if err != nil {
		t.Fatalf("ListItemsByNamePrefix: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("prefix %% must match nothing, got %+v", items)
	}

	items, err = repo.ListItemsByNamePrefix(ctx, "_", 10)
	if err != nil {
		t.Fatalf("ListItemsByNamePrefix: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("prefix _ must match nothing, got %+v", items)
	}

	items, err = repo.ListItemsByNamePrefix(ctx, "100%", 10)
	if err != nil {
		t.Fatalf("ListItemsByNamePrefix: %v", err)
	}
	if len(items) != 1 || items[0].Name != "100% Juice" {
		t.Fatalf("expected [100%% Juice], got %+v", items)
	}

	items, err = repo.ListItemsByNamePrefix(ctx, "a_b", 10)
	if err != nil {
		t.Fatalf("ListItemsByNamePrefix: %v", err)
	}
	if len(items) != 1 || items[0].Name != "a_b Spice" {
		t.Fatalf("expected [a_b Spice], got %+v", items)
	}
}

func TestListItemsWithCategory_OrdersByCategoryThenName(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	household := seedCategory(t, db, "Household")
	food := seedCategory(t, db, "Food")

	if _, err := repo.InsertItem(ctx, "Soap", "soap", household.ID); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	if _, err := repo.InsertItem(ctx, "Milk", "milk", food.ID); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}
	if _, err := repo.InsertItem(ctx, "Bread", "bread", food.ID); err != nil {
		t.Fatalf("InsertItem: %v", err)
	}

	items, err := repo.ListItemsWithCategory(ctx)
	if err != nil {
		t.Fatalf("ListItemsWithCategory: %v", err)
	}
	var names []string
	for _, item := range items {
		names = append(names, item.Name)
	}
	want := []string{"Bread", "Milk", "Soap"}
	if len(names) != len(want) {
		t.Fatalf("expected %d items, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}

func TestUpdateAvailability_WritesAllFieldsTogether(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	food := seedCategory(t, db, "Food")
	item, err := repo.InsertItem(ctx, "Milk", "milk", food.ID)
	if err != nil {
		t.Fatalf("InsertItem: %v", err)
	}

	first := time.Date(2025, 10, 19, 8, 30, 0, 0, time.UTC)
	if err := repo.InsertAvailability(ctx, &model.ItemAvailability{
		ItemID: item.ID, IsAvailable: true, UpdatedAt: first, UpdatedBy: "alice",
	}); err != nil {
		t.Fatalf("InsertAvailability: %v", err)
	}

	second := first.Add(time.Hour)
	if err := repo.UpdateAvailability(ctx, &model.ItemAvailability{
		ItemID: item.ID, IsAvailable: false, UpdatedAt: second, UpdatedBy: "bob",
	}); err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}

	got, err := repo.FindAvailabilityByItemID(ctx, item.ID)
	if err != nil {
		t.Fatalf("FindAvailabilityByItemID: %v", err)
	}
	if got == nil {
		t.Fatal("expected availability row")
	}
	// is_available must be written even though it flipped to false
	if got.IsAvailable {
		t.Error("expected is_available false")
	}
	if !got.UpdatedAt.Equal(second) {
		t.Errorf("expected updated_at %v, got %v", second, got.UpdatedAt)
	}
	if got.UpdatedBy != "bob" {
		t.Errorf("expected updated_by bob, got %s", got.UpdatedBy)
	}
}

func TestRepositoryObservesOperationDurations(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	seedCategory(t, db, "Food")
	if _, err := repo.ListCategoriesOrderedByName(ctx); err != nil {
		t.Fatalf("ListCategoriesOrderedByName: %v", err)
	}

	count := testutil.CollectAndCount(&prometheus.DbOperationDuration,
		"repository_test_db_operation_duration_seconds")
	if count == 0 {
		t.Error("expected db operation durations to be observed")
	}
}

func TestSeedCategories_OnlySeedsEmptyTable(t *testing.T) {
	db := repoTestDB(t)
	repo := repository.NewGormRepository(db)
	ctx := context.Background()

	if err := repo.SeedCategories(ctx, []string{"Food", "Household"}); err != nil {
		t.Fatalf("SeedCategories: %v", err)
	}
	if err := repo.SeedCategories(ctx, []string{"Garden"}); err != nil {
		t.Fatalf("SeedCategories second run: %v", err)
	}

	categories, err := repo.ListCategoriesOrderedByName(ctx)
	if err != nil {
		t.Fatalf("ListCategoriesOrderedByName: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Food" || categories[1].Name != "Household" {
		t.Errorf("expected [Food Household], got %+v", categories)
	}
}
