package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shoppinglist-service/internal/model"
	"shoppinglist-service/internal/repository"
)

const (
	defaultListLimit = 10
	maxListLimit     = 50
)

// AvailabilityService reads, lazily creates and updates per-item
// availability records.
type AvailabilityService struct {
	repo repository.Repository
}

func NewAvailabilityService(repo repository.Repository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// AvailabilityState is the full availability record after an update.
type AvailabilityState struct {
	ItemID      uint      `json:"itemId"`
	IsAvailable bool      `json:"isAvailable"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedBy   string    `json:"updatedBy"`
}

// ItemSummary is a single typeahead suggestion row.
type ItemSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// SetAvailability sets the stock flag for an item. An item without an
// availability record gets one materialized on this first write; items
// created before the record existed are treated as currently unavailable.
// IsAvailable, UpdatedAt and UpdatedBy are always written together.
func (s *AvailabilityService) SetAvailability(ctx context.Context, itemID uint, isAvailable bool, actor string) (*AvailabilityState, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, &StorageError{Op: "item lookup", Err: err}
	}
	if item == nil {
		return nil, &NotFoundError{Message: fmt.Sprintf("item %d not found", itemID)}
	}

	if strings.TrimSpace(actor) == "" {
		actor = "anon"
	}
	now := time.Now().UTC()

	existing, err := s.repo.FindAvailabilityByItemID(ctx, itemID)
	if err != nil {
		return nil, &StorageError{Op: "availability lookup", Err: err}
	}

	record := model.ItemAvailability{
		ItemID:      itemID,
		IsAvailable: isAvailable,
		UpdatedAt:   now,
		UpdatedBy:   actor,
	}
	if existing == nil {
		// Lazy materialization. A concurrent first write loses on the
		// primary key and surfaces here instead of duplicating the row.
		if err := s.repo.InsertAvailability(ctx, &record); err != nil {
			return nil, &StorageError{Op: "availability insert", Err: err}
		}
	} else {
		if err := s.repo.UpdateAvailability(ctx, &record); err != nil {
			return nil, &StorageError{Op: "availability update", Err: err}
		}
	}

	return &AvailabilityState{
		ItemID:      record.ItemID,
		IsAvailable: record.IsAvailable,
		UpdatedAt:   record.UpdatedAt,
		UpdatedBy:   record.UpdatedBy,
	}, nil
}

// ListItems returns up to limit items whose name starts with prefix,
// case-insensitively, ordered by name. limit is clamped to [1, 50]; callers
// that have no preference pass 0 and get 10.
func (s *AvailabilityService) ListItems(ctx context.Context, prefix string, limit int) ([]ItemSummary, error) {
	if limit == 0 {
		limit = defaultListLimit
	} else if limit < 1 {
		limit = 1
	} else if limit > maxListLimit {
		limit = maxListLimit
	}
	normalized := strings.ToLower(strings.TrimSpace(prefix))

	items, err := s.repo.ListItemsByNamePrefix(ctx, normalized, limit)
	if err != nil {
		return nil, &StorageError{Op: "item search", Err: err}
	}

	summaries := make([]ItemSummary, 0, len(items))
	for _, item := range items {
		categoryName := ""
		if item.Category != nil {
			categoryName = item.Category.Name
		}
		summaries = append(summaries, ItemSummary{
			ID:       item.ID,
			Name:     item.Name,
			Category: categoryName,
		})
	}
	return summaries, nil
}
