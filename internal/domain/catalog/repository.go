package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the interface for catalog item persistence
type ItemRepository interface {
	// Create creates a new item
	Create(ctx context.Context, item *Item) error

	// FindByID finds an item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindBySKU finds an item by its SKU
	FindBySKU(ctx context.Context, sku string) (*Item, error)

	// FindAll returns all items ordered by SKU
	FindAll(ctx context.Context) ([]*Item, error)

	// ExistsBySKU checks if a SKU is already registered
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// Create creates a new supplier
	Create(ctx context.Context, supplier *Supplier) error

	// FindByID finds a supplier by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByCode finds a supplier by its vendor code
	FindByCode(ctx context.Context, code string) (*Supplier, error)

	// FindAll returns all suppliers ordered by name
	FindAll(ctx context.Context) ([]*Supplier, error)

	// ExistsByCode checks if a vendor code is already registered
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
