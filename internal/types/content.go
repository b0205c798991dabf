package types

import (
	"time"

	"github.com/google/uuid"
)

// ItemType is the closed discriminant of the polymorphic content item.
type ItemType string

const (
	ItemTypeText  ItemType = "text"
	ItemTypeVideo ItemType = "video"
	ItemTypeImage ItemType = "image"
	ItemTypeFile  ItemType = "file"
)

// ValidItemType reports whether tag names one of the four item tables.
func ValidItemType(tag ItemType) bool {
	switch tag {
	case ItemTypeText, ItemTypeVideo, ItemTypeImage, ItemTypeFile:
		return true
	}
	return false
}

// Content binds a module to exactly one item through the
// (item_type, item_id) pair. Order follows the same per-module
// uniqueness and contiguity invariant as Module.Order.
type Content struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"module_id"`
	Module    *Module   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Order     int       `gorm:"column:order;not null" json:"order"`
	ItemType  ItemType  `gorm:"column:item_type;not null" json:"item_type"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Content) TableName() string { return "content" }
