package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"shoppinglist-service/internal/model"
	"shoppinglist-service/prometheus"

	"gorm.io/gorm"
)

// likeEscaper neutralizes LIKE metacharacters so a prefix matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormRepository implements Repository on top of a gorm connection.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) FindCategoryByID(ctx context.Context, id uint) (*model.Category, error) {
	defer prometheus.TrackDBOperation("category_find")(time.Now())
	var category model.Category
	result := r.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &category, nil
}

func (r *GormRepository) ListCategoriesOrderedByName(ctx context.Context) ([]model.Category, error) {
	defer prometheus.TrackDBOperation("category_list")(time.Now())
	var categories []model.Category
	result := r.db.WithContext(ctx).Order("name ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}
	return categories, nil
}

func (r *GormRepository) FindItemByID(ctx context.Context, id uint) (*model.Item, error) {
	defer prometheus.TrackDBOperation("item_find")(time.Now())
	var item model.Item
	result := r.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &item, nil
}

func (r *GormRepository) ItemExists(ctx context.Context, categoryID uint, nameKey string) (bool, error) {
	defer prometheus.TrackDBOperation("item_exists")(time.Now())
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("category_id = ? AND name_key = ?", categoryID, nameKey).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *GormRepository) ListItemsWithCategory(ctx context.Context) ([]model.Item, error) {
	defer prometheus.TrackDBOperation("item_list")(time.Now())
	var items []model.Item
	result := r.db.WithContext(ctx).
		Joins("LEFT JOIN categories ON categories.id = items.category_id").
		Order("COALESCE(categories.name, '') ASC, items.name ASC").
		Preload("Category").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *GormRepository) ListItemsByNamePrefix(ctx context.Context, prefix string, limit int) ([]model.Item, error) {
	defer prometheus.TrackDBOperation("item_search")(time.Now())
	var items []model.Item
	result := r.db.WithContext(ctx).
		Where(`name_key LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%").
		Order("name ASC").
		Limit(limit).
		Preload("Category").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *GormRepository) InsertItem(ctx context.Context, name, nameKey string, categoryID uint) (*model.Item, error) {
	defer prometheus.TrackDBOperation("item_insert")(time.Now())
	item := model.Item{
		Name:       name,
		NameKey:    nameKey,
		CategoryID: categoryID,
	}
	if result := r.db.WithContext(ctx).Create(&item); result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *GormRepository) FindAvailabilityByItemID(ctx context.Context, itemID uint) (*model.ItemAvailability, error) {
	defer prometheus.TrackDBOperation("availability_find")(time.Now())
	var availability model.ItemAvailability
	result := r.db.WithContext(ctx).First(&availability, "item_id = ?", itemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &availability, nil
}

func (r *GormRepository) InsertAvailability(ctx context.Context, a *model.ItemAvailability) error {
	defer prometheus.TrackDBOperation("availability_insert")(time.Now())
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *GormRepository) UpdateAvailability(ctx context.Context, a *model.ItemAvailability) error {
	defer prometheus.TrackDBOperation("availability_update")(time.Now())
	// The three fields always travel together; Select forces a write even
	// when is_available flips back to false.
	return r.db.WithContext(ctx).Model(&model.ItemAvailability{ItemID: a.ItemID}).
		Select("is_available", "updated_at", "updated_by").
		Updates(a).Error
}

func (r *GormRepository) ListAllAvailability(ctx context.Context) ([]model.ItemAvailability, error) {
	defer prometheus.TrackDBOperation("availability_list")(time.Now())
	var availabilities []model.ItemAvailability
	result := r.db.WithContext(ctx).Find(&availabilities)
	if result.Error != nil {
		return nil, result.Error
	}
	return availabilities, nil
}

func (r *GormRepository) SeedCategories(ctx context.Context, names []string) error {
	defer prometheus.TrackDBOperation("category_seed")(time.Now())
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Category{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, name := range names {
			if err := tx.Create(&model.Category{Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
