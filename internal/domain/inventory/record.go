package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/shared"
)

// InventoryRecord tracks the on-hand quantity for a single SKU.
// It is the aggregate root for inventory levels; it only ever grows
// through receipt application and never goes negative.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	SKU    string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_inventory_sku"`
	Name   string          `gorm:"type:varchar(200);not null"`
	OnHand decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UoM    string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates a zero-quantity record for a SKU
func NewInventoryRecord(sku, name, uom string) (*InventoryRecord, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "SKU cannot be empty")
	}
	uom = strings.TrimSpace(uom)
	if uom == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit of measure cannot be empty")
	}

	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              strings.TrimSpace(name),
		OnHand:            decimal.Zero,
		UoM:               uom,
	}, nil
}

// AddQuantity increases the on-hand level by the received quantity
func (r *InventoryRecord) AddQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Quantity added to %s must be positive", r.SKU))
	}

	r.OnHand = r.OnHand.Add(quantity)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}
