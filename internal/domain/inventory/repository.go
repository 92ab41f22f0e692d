package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryRepository defines the interface for inventory record persistence
type InventoryRepository interface {
	// Create creates a new inventory record
	Create(ctx context.Context, record *InventoryRecord) error

	// AddOnHand atomically increments a record's on-hand quantity in
	// place. Returns ErrNotFound when no record exists for the SKU.
	// Receipts for the same SKU arriving through different orders must
	// not overwrite each other, so the increment happens in the store
	// rather than on a previously read row.
	AddOnHand(ctx context.Context, sku string, quantity decimal.Decimal) error

	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecord, error)

	// FindBySKU finds a record by SKU
	FindBySKU(ctx context.Context, sku string) (*InventoryRecord, error)

	// FindAll returns all records ordered by SKU
	FindAll(ctx context.Context) ([]*InventoryRecord, error)
}
