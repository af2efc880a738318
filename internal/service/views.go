package service

import (
	"context"
	"time"

	"shoppinglist-service/internal/model"
	"shoppinglist-service/internal/repository"
)

// ViewComposer joins items, categories and availability records into
// display rows. This is the one place the "available vs. needs buying"
// rule lives.
type ViewComposer struct {
	repo repository.Repository
}

func NewViewComposer(repo repository.Repository) *ViewComposer {
	return &ViewComposer{repo: repo}
}

// ItemView is a single display row.
type ItemView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"categoryName"`
	IsAvailable bool       `json:"isAvailable"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// Views bundles everything the shopping-list page needs in one response.
type Views struct {
	Categories  []model.Category `json:"categories"`
	MasterItems []ItemView       `json:"masterItems"`
	BuyList     []ItemView       `json:"buyList"`
}

// BuildViews loads all categories, items and availability records and
// composes the master list plus the derived buy list. An item without an
// availability record shows as unavailable with no timestamp; an item whose
// category row is missing keeps its position as if the category name were
// empty. The buy list is exactly the unavailable subset of the master list,
// in the same order.
func (v *ViewComposer) BuildViews(ctx context.Context) (*Views, error) {
	categories, err := v.repo.ListCategoriesOrderedByName(ctx)
	if err != nil {
		return nil, &StorageError{Op: "category list", Err: err}
	}

	items, err := v.repo.ListItemsWithCategory(ctx)
	if err != nil {
		return nil, &StorageError{Op: "item list", Err: err}
	}

	availabilities, err := v.repo.ListAllAvailability(ctx)
	if err != nil {
		return nil, &StorageError{Op: "availability list", Err: err}
	}
	byItemID := make(map[uint]model.ItemAvailability, len(availabilities))
	for _, a := range availabilities {
		byItemID[a.ItemID] = a
	}

	masterItems := make([]ItemView, 0, len(items))
	buyList := make([]ItemView, 0)
	for _, item := range items {
		row := ItemView{
			ID:   item.ID,
			Name: item.Name,
		}
		if item.Category != nil {
			row.Category = item.Category.Name
		}
		if record, ok := byItemID[item.ID]; ok {
			row.IsAvailable = record.IsAvailable
			updatedAt := record.UpdatedAt
			row.LastUpdated = &updatedAt
		}
		masterItems = append(masterItems, row)
		if !row.IsAvailable {
			buyList = append(buyList, row)
		}
	}

	if categories == nil {
		categories = make([]model.Category, 0)
	}
	return &Views{
		Categories:  categories,
		MasterItems: masterItems,
		BuyList:     buyList,
	}, nil
}
