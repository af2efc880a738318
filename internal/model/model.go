package model

import (
	"time"
)

// Category represents a master item grouping. Categories are seeded at
// startup and never modified afterwards.
type Category struct {
	ID   uint   `json:"id" gorm:"primarykey"`
	Name string `json:"name" gorm:"type:varchar(100);not null"`
}

// Item represents a master catalog entry. NameKey holds the trimmed,
// lowercased name; the composite unique index with CategoryID is what makes
// a lost duplicate-check race fail on insert instead of writing a second row.
type Item struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Name       string    `json:"name" gorm:"type:varchar(128);not null"`
	NameKey    string    `json:"-" gorm:"type:varchar(128);not null;uniqueIndex:idx_items_category_name_key"`
	CategoryID uint      `json:"category_id" gorm:"not null;uniqueIndex:idx_items_category_name_key"`
	Category   *Category `json:"category,omitempty"`
}

// ItemAvailability is the per-item stock state. The primary key doubles as
// the foreign key to Item, so there can be at most one row per item and the
// row is removed together with its item.
type ItemAvailability struct {
	ItemID      uint      `json:"itemId" gorm:"primarykey;autoIncrement:false"`
	IsAvailable bool      `json:"isAvailable" gorm:"not null;default:false"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
	UpdatedBy   string    `json:"updatedBy" gorm:"type:varchar(64)"`
	Item        *Item     `json:"-" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}
