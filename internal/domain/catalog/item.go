package catalog

import (
	"strings"
	"time"

	"github.com/procure/backend/internal/domain/shared"
)

// Item represents a purchasable good identified by its SKU.
// It is the aggregate root for catalog item operations.
type Item struct {
	shared.BaseAggregateRoot
	SKU  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_item_sku"`
	Name string `gorm:"type:varchar(200);not null"`
	UoM  string `gorm:"type:varchar(20);not null"` // Unit of measure, e.g. "pcs", "box"
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(sku, name, uom string) (*Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "SKU cannot exceed 100 characters")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name cannot exceed 200 characters")
	}

	uom = strings.TrimSpace(uom)
	if uom == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit of measure cannot be empty")
	}

	return &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		UoM:               uom,
	}, nil
}

// Rename changes the item's display name
func (i *Item) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Item name cannot be empty")
	}

	i.Name = name
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}
