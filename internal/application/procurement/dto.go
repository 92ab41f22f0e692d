package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/procurement"
)

// CreatePurchaseRequestRequest contains data for creating a purchase request
type CreatePurchaseRequestRequest struct {
	RequesterID uuid.UUID
	ApproverID  uuid.UUID
	Lines       []RequestLineRequest
}

// RequestLineRequest contains data for a single requested line
type RequestLineRequest struct {
	SKU      string
	Name     string
	Quantity decimal.Decimal
	UoM      string
}

// DecidePurchaseRequestRequest contains data for deciding a purchase request
type DecidePurchaseRequestRequest struct {
	ActorID uuid.UUID
	Approve bool
}

// CreatePurchaseOrderRequest contains data for issuing a purchase order
type CreatePurchaseOrderRequest struct {
	RequestID  uuid.UUID
	SupplierID uuid.UUID
}

// RecordGoodsReceiptRequest contains data for recording a delivery
type RecordGoodsReceiptRequest struct {
	OrderID uuid.UUID
	Lines   []RequestLineRequest
}

// RequestLineResponse represents a line on a purchase request
type RequestLineResponse struct {
	ID       uuid.UUID       `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"qty"`
	UoM      string          `json:"uom"`
}

// PurchaseRequestResponse represents a purchase request in API responses
type PurchaseRequestResponse struct {
	ID          uuid.UUID             `json:"id"`
	RequesterID uuid.UUID             `json:"employee_id"`
	ApproverID  uuid.UUID             `json:"manager_id"`
	Lines       []RequestLineResponse `json:"lines"`
	Status      string                `json:"status"`
	SubmittedAt time.Time             `json:"submitted_at"`
	DecidedAt   *time.Time            `json:"decided_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Version     int                   `json:"version"`
}

// OrderLineResponse represents a line on a purchase order
type OrderLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	OrderedQuantity  decimal.Decimal `json:"qty_ordered"`
	ReceivedQuantity decimal.Decimal `json:"qty_received"`
	UoM              string          `json:"uom"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	RequestID    uuid.UUID           `json:"pr_id"`
	SupplierID   uuid.UUID           `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	Lines        []OrderLineResponse `json:"lines"`
	Status       string              `json:"status"`
	IssuedAt     time.Time           `json:"issued_at"`
	ReceivedAt   *time.Time          `json:"received_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// ReceiptLineResponse represents a line on a goods receipt
type ReceiptLineResponse struct {
	ID       uuid.UUID       `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"qty_received"`
	UoM      string          `json:"uom"`
}

// GoodsReceiptResponse represents a goods receipt in API responses
type GoodsReceiptResponse struct {
	ID        uuid.UUID             `json:"id"`
	OrderID   uuid.UUID             `json:"po_id"`
	Lines     []ReceiptLineResponse `json:"lines"`
	CreatedAt time.Time             `json:"created_at"`
}

// RecordGoodsReceiptResponse wraps the receipt with the updated order
type RecordGoodsReceiptResponse struct {
	Receipt GoodsReceiptResponse  `json:"receipt"`
	Order   PurchaseOrderResponse `json:"order"`
}

// Statuses are stored upper case internally; the API surface uses
// lower case, e.g. "partially_received".
func statusJSON(s string) string {
	return strings.ToLower(s)
}

// ToPurchaseRequestResponse converts a domain PurchaseRequest to a response DTO
func ToPurchaseRequestResponse(request *procurement.PurchaseRequest) PurchaseRequestResponse {
	lines := make([]RequestLineResponse, len(request.Lines))
	for i, l := range request.Lines {
		lines[i] = RequestLineResponse{
			ID:       l.ID,
			SKU:      l.SKU,
			Name:     l.Name,
			Quantity: l.Quantity,
			UoM:      l.UoM,
		}
	}

	return PurchaseRequestResponse{
		ID:          request.ID,
		RequesterID: request.RequesterID,
		ApproverID:  request.ApproverID,
		Lines:       lines,
		Status:      statusJSON(string(request.Status)),
		SubmittedAt: request.SubmittedAt,
		DecidedAt:   request.DecidedAt,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.UpdatedAt,
		Version:     request.Version,
	}
}

// ToPurchaseRequestResponses converts a slice of domain requests
func ToPurchaseRequestResponses(requests []*procurement.PurchaseRequest) []PurchaseRequestResponse {
	responses := make([]PurchaseRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = ToPurchaseRequestResponse(r)
	}
	return responses
}

// ToPurchaseOrderResponse converts a domain PurchaseOrder to a response DTO
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	lines := make([]OrderLineResponse, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = OrderLineResponse{
			ID:               l.ID,
			SKU:              l.SKU,
			Name:             l.Name,
			OrderedQuantity:  l.OrderedQuantity,
			ReceivedQuantity: l.ReceivedQuantity,
			UoM:              l.UoM,
		}
	}

	return PurchaseOrderResponse{
		ID:           order.ID,
		RequestID:    order.RequestID,
		SupplierID:   order.SupplierID,
		SupplierName: order.SupplierName,
		Lines:        lines,
		Status:       statusJSON(string(order.Status)),
		IssuedAt:     order.IssuedAt,
		ReceivedAt:   order.ReceivedAt,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Version:      order.Version,
	}
}

// ToPurchaseOrderResponses converts a slice of domain orders
func ToPurchaseOrderResponses(orders []*procurement.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = ToPurchaseOrderResponse(o)
	}
	return responses
}

// ToGoodsReceiptResponse converts a domain GoodsReceipt to a response DTO
func ToGoodsReceiptResponse(receipt *procurement.GoodsReceipt) GoodsReceiptResponse {
	lines := make([]ReceiptLineResponse, len(receipt.Lines))
	for i, l := range receipt.Lines {
		lines[i] = ReceiptLineResponse{
			ID:       l.ID,
			SKU:      l.SKU,
			Name:     l.Name,
			Quantity: l.Quantity,
			UoM:      l.UoM,
		}
	}

	return GoodsReceiptResponse{
		ID:        receipt.ID,
		OrderID:   receipt.OrderID,
		Lines:     lines,
		CreatedAt: receipt.CreatedAt,
	}
}

// ToGoodsReceiptResponses converts a slice of domain receipts
func ToGoodsReceiptResponses(receipts []*procurement.GoodsReceipt) []GoodsReceiptResponse {
	responses := make([]GoodsReceiptResponse, len(receipts))
	for i, r := range receipts {
		responses[i] = ToGoodsReceiptResponse(r)
	}
	return responses
}
