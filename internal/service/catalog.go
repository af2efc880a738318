package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"shoppinglist-service/internal/model"
	"shoppinglist-service/internal/repository"
)

const maxItemNameLength = 128

// CatalogService creates master items and seeds their initial availability
// record.
type CatalogService struct {
	repo repository.Repository
}

func NewCatalogService(repo repository.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

// CreatedItem is the result of a successful CreateItem, complete enough for
// the caller to render without a re-read.
type CreatedItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`

	// SeededAt is the timestamp written to the initial availability record.
	SeededAt time.Time `json:"-"`
}

// CreateItem validates and inserts a new master item, then writes its
// initial availability record (unavailable, attributed to actor or
// "system"). Duplicate detection is case-insensitive on the trimmed name
// and scoped to the category: the same name in two categories is legal.
//
// The item and availability inserts are two separate writes. If the second
// fails the item persists without an availability row; SetAvailability
// repairs that lazily on first toggle.
func (s *CatalogService) CreateItem(ctx context.Context, name string, categoryID uint, actor string) (*CreatedItem, error) {
	var fields []FieldError
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	} else if utf8.RuneCountInString(trimmed) > maxItemNameLength {
		fields = append(fields, FieldError{Field: "name", Message: "name must be at most 128 characters"})
	}
	if categoryID == 0 {
		fields = append(fields, FieldError{Field: "categoryId", Message: "categoryId is required"})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	nameKey := strings.ToLower(trimmed)

	exists, err := s.repo.ItemExists(ctx, categoryID, nameKey)
	if err != nil {
		return nil, &StorageError{Op: "duplicate check", Err: err}
	}
	if exists {
		return nil, &ConflictError{Message: "item already exists in this category"}
	}

	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, &StorageError{Op: "category lookup", Err: err}
	}
	if category == nil {
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "categoryId", Message: "selected category does not exist"},
		}}
	}

	item, err := s.repo.InsertItem(ctx, trimmed, nameKey, categoryID)
	if err != nil {
		return nil, &StorageError{Op: "item insert", Err: err}
	}

	if strings.TrimSpace(actor) == "" {
		actor = "system"
	}
	now := time.Now().UTC()
	availability := &model.ItemAvailability{
		ItemID:      item.ID,
		IsAvailable: false,
		UpdatedAt:   now,
		UpdatedBy:   actor,
	}
	if err := s.repo.InsertAvailability(ctx, availability); err != nil {
		return nil, &StorageError{Op: "availability insert", Err: err}
	}

	return &CreatedItem{
		ID:       item.ID,
		Name:     item.Name,
		Category: category.Name,
		SeededAt: now,
	}, nil
}
