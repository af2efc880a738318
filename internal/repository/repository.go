package repository

import (
	"context"

	"shoppinglist-service/internal/model"
)

// Repository is the persistence contract the catalog and availability
// services are written against. Find* methods report a missing row as
// (nil, nil) rather than an error.
type Repository interface {
	FindCategoryByID(ctx context.Context, id uint) (*model.Category, error)
	ListCategoriesOrderedByName(ctx context.Context) ([]model.Category, error)

	FindItemByID(ctx context.Context, id uint) (*model.Item, error)
	// ItemExists reports whether an item with the given comparison key
	// already exists in the category.
	ItemExists(ctx context.Context, categoryID uint, nameKey string) (bool, error)
	// ListItemsWithCategory returns all items with Category populated,
	// ordered by category name then item name. Items whose category row is
	// missing sort as if the category name were empty.
	ListItemsWithCategory(ctx context.Context) ([]model.Item, error)
	// ListItemsByNamePrefix returns up to limit items whose name matches the
	// lowercased prefix, ordered by name, with Category populated.
	ListItemsByNamePrefix(ctx context.Context, prefix string, limit int) ([]model.Item, error)
	InsertItem(ctx context.Context, name, nameKey string, categoryID uint) (*model.Item, error)

	FindAvailabilityByItemID(ctx context.Context, itemID uint) (*model.ItemAvailability, error)
	InsertAvailability(ctx context.Context, a *model.ItemAvailability) error
	UpdateAvailability(ctx context.Context, a *model.ItemAvailability) error
	ListAllAvailability(ctx context.Context) ([]model.ItemAvailability, error)

	// SeedCategories inserts the given category names if the table is empty.
	SeedCategories(ctx context.Context, names []string) error
}
