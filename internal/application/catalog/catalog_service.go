package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/catalog"
	"github.com/procure/backend/internal/domain/shared"
)

// CreateItemRequest contains data for creating a catalog item
type CreateItemRequest struct {
	SKU  string
	Name string
	UoM  string
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	UoM       string    `json:"uom"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest contains data for creating a supplier
type CreateSupplierRequest struct {
	Name string
	Code string
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// ToItemResponse converts a domain Item to a response DTO
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		SKU:       item.SKU,
		Name:      item.Name,
		UoM:       item.UoM,
		CreatedAt: item.CreatedAt,
	}
}

// ToSupplierResponse converts a domain Supplier to a response DTO
func ToSupplierResponse(supplier *catalog.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        supplier.ID,
		Name:      supplier.Name,
		Code:      supplier.Code,
		CreatedAt: supplier.CreatedAt,
	}
}

// CatalogService handles item and supplier business operations
type CatalogService struct {
	itemRepo     catalog.ItemRepository
	supplierRepo catalog.SupplierRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(itemRepo catalog.ItemRepository, supplierRepo catalog.SupplierRepository) *CatalogService {
	return &CatalogService{
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateItem registers a new catalog item with a unique SKU
func (s *CatalogService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := catalog.NewItem(req.SKU, req.Name, req.UoM)
	if err != nil {
		return nil, err
	}

	taken, err := s.itemRepo.ExistsBySKU(ctx, item.SKU)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "SKU is already registered")
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetItem retrieves a catalog item by ID
func (s *CatalogService) GetItem(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// ListItems returns all catalog items
func (s *CatalogService) ListItems(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToItemResponse(item)
	}
	return responses, nil
}

// CreateSupplier registers a new supplier with a unique vendor code
func (s *CatalogService) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := catalog.NewSupplier(req.Name, req.Code)
	if err != nil {
		return nil, err
	}

	taken, err := s.supplierRepo.ExistsByCode(ctx, supplier.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier code is already registered")
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetSupplier retrieves a supplier by ID
func (s *CatalogService) GetSupplier(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// ListSuppliers returns all suppliers
func (s *CatalogService) ListSuppliers(ctx context.Context) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]SupplierResponse, len(suppliers))
	for i, supplier := range suppliers {
		responses[i] = ToSupplierResponse(supplier)
	}
	return responses, nil
}
