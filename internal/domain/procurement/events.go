package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePurchaseRequest = "PurchaseRequest"
	AggregateTypePurchaseOrder   = "PurchaseOrder"
	AggregateTypeGoodsReceipt    = "GoodsReceipt"
)

// Event type constants
const (
	EventTypePurchaseRequestSubmitted = "PurchaseRequestSubmitted"
	EventTypePurchaseRequestDecided   = "PurchaseRequestDecided"
	EventTypePurchaseOrderIssued      = "PurchaseOrderIssued"
	EventTypeGoodsReceiptRecorded     = "GoodsReceiptRecorded"
)

// RequestLineInfo represents line information carried on events
type RequestLineInfo struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	UoM      string          `json:"uom"`
}

// PurchaseRequestSubmittedEvent is raised when a new request enters the flow
type PurchaseRequestSubmittedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID         `json:"request_id"`
	RequesterID uuid.UUID         `json:"requester_id"`
	ApproverID  uuid.UUID         `json:"approver_id"`
	Lines       []RequestLineInfo `json:"lines"`
}

// NewPurchaseRequestSubmittedEvent creates a new PurchaseRequestSubmittedEvent
func NewPurchaseRequestSubmittedEvent(request *PurchaseRequest) *PurchaseRequestSubmittedEvent {
	lines := make([]RequestLineInfo, len(request.Lines))
	for i, l := range request.Lines {
		lines[i] = RequestLineInfo{SKU: l.SKU, Name: l.Name, Quantity: l.Quantity, UoM: l.UoM}
	}
	return &PurchaseRequestSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRequestSubmitted, AggregateTypePurchaseRequest, request.ID),
		RequestID:       request.ID,
		RequesterID:     request.RequesterID,
		ApproverID:      request.ApproverID,
		Lines:           lines,
	}
}

// EventType returns the event type name
func (e *PurchaseRequestSubmittedEvent) EventType() string {
	return EventTypePurchaseRequestSubmitted
}

// PurchaseRequestDecidedEvent is raised when a request is approved or rejected
type PurchaseRequestDecidedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID             `json:"request_id"`
	RequesterID uuid.UUID             `json:"requester_id"`
	ApproverID  uuid.UUID             `json:"approver_id"`
	Status      PurchaseRequestStatus `json:"status"`
}

// NewPurchaseRequestDecidedEvent creates a new PurchaseRequestDecidedEvent
func NewPurchaseRequestDecidedEvent(request *PurchaseRequest) *PurchaseRequestDecidedEvent {
	return &PurchaseRequestDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseRequestDecided, AggregateTypePurchaseRequest, request.ID),
		RequestID:       request.ID,
		RequesterID:     request.RequesterID,
		ApproverID:      request.ApproverID,
		Status:          request.Status,
	}
}

// EventType returns the event type name
func (e *PurchaseRequestDecidedEvent) EventType() string {
	return EventTypePurchaseRequestDecided
}

// PurchaseOrderIssuedEvent is raised when an order is issued to a supplier
type PurchaseOrderIssuedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID `json:"order_id"`
	RequestID    uuid.UUID `json:"request_id"`
	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
}

// NewPurchaseOrderIssuedEvent creates a new PurchaseOrderIssuedEvent
func NewPurchaseOrderIssuedEvent(order *PurchaseOrder) *PurchaseOrderIssuedEvent {
	return &PurchaseOrderIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderIssued, AggregateTypePurchaseOrder, order.ID),
		OrderID:         order.ID,
		RequestID:       order.RequestID,
		SupplierID:      order.SupplierID,
		SupplierName:    order.SupplierName,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderIssuedEvent) EventType() string {
	return EventTypePurchaseOrderIssued
}

// GoodsReceiptRecordedEvent is raised when a delivery is recorded
type GoodsReceiptRecordedEvent struct {
	shared.BaseDomainEvent
	ReceiptID   uuid.UUID         `json:"receipt_id"`
	OrderID     uuid.UUID         `json:"order_id"`
	Lines       []RequestLineInfo `json:"lines"`
	OrderStatus string            `json:"order_status,omitempty"`
}

// NewGoodsReceiptRecordedEvent creates a new GoodsReceiptRecordedEvent
func NewGoodsReceiptRecordedEvent(receipt *GoodsReceipt) *GoodsReceiptRecordedEvent {
	lines := make([]RequestLineInfo, len(receipt.Lines))
	for i, l := range receipt.Lines {
		lines[i] = RequestLineInfo{SKU: l.SKU, Name: l.Name, Quantity: l.Quantity, UoM: l.UoM}
	}
	return &GoodsReceiptRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGoodsReceiptRecorded, AggregateTypeGoodsReceipt, receipt.ID),
		ReceiptID:       receipt.ID,
		OrderID:         receipt.OrderID,
		Lines:           lines,
	}
}

// EventType returns the event type name
func (e *GoodsReceiptRecordedEvent) EventType() string {
	return EventTypeGoodsReceiptRecorded
}
