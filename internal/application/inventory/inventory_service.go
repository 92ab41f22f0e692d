package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/inventory"
)

// InventoryRecordResponse represents an on-hand record in API responses
type InventoryRecordResponse struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	OnHand    decimal.Decimal `json:"on_hand"`
	UoM       string          `json:"uom"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToInventoryRecordResponse converts a domain record to a response DTO
func ToInventoryRecordResponse(record *inventory.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ID:        record.ID,
		SKU:       record.SKU,
		Name:      record.Name,
		OnHand:    record.OnHand,
		UoM:       record.UoM,
		UpdatedAt: record.UpdatedAt,
	}
}

// InventoryService exposes read access to on-hand levels. Mutation happens
// only through goods receipt processing.
type InventoryService struct {
	inventoryRepo inventory.InventoryRepository
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(inventoryRepo inventory.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// GetBySKU retrieves the on-hand record for a SKU
func (s *InventoryService) GetBySKU(ctx context.Context, sku string) (*InventoryRecordResponse, error) {
	record, err := s.inventoryRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToInventoryRecordResponse(record)
	return &response, nil
}

// ListAll returns all on-hand records
func (s *InventoryService) ListAll(ctx context.Context) ([]InventoryRecordResponse, error) {
	records, err := s.inventoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]InventoryRecordResponse, len(records))
	for i, r := range records {
		responses[i] = ToInventoryRecordResponse(r)
	}
	return responses, nil
}
