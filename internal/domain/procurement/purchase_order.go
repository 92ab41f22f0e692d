package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusIssued            PurchaseOrderStatus = "ISSUED"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "RECEIVED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusIssued, PurchaseOrderStatusPartiallyReceived, PurchaseOrderStatusReceived:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusIssued:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusPartiallyReceived || target == PurchaseOrderStatusReceived
	case PurchaseOrderStatusReceived:
		return false // Terminal state
	}
	return false
}

// CanReceive returns true if receiving goods is allowed in this status
func (s PurchaseOrderStatus) CanReceive() bool {
	return s == PurchaseOrderStatusIssued || s == PurchaseOrderStatusPartiallyReceived
}

// PurchaseOrderLine represents a line item on a purchase order.
// Quantities are snapshotted from the originating request; received
// quantity accumulates as goods receipts are recorded.
type PurchaseOrderLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU              string          `gorm:"type:varchar(100);not null"`
	Name             string          `gorm:"type:varchar(200);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UoM              string          `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// RemainingQuantity returns the quantity still to be received
func (l *PurchaseOrderLine) RemainingQuantity() decimal.Decimal {
	remaining := l.OrderedQuantity.Sub(l.ReceivedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsFullyReceived returns true if all ordered quantity has been received
func (l *PurchaseOrderLine) IsFullyReceived() bool {
	return l.ReceivedQuantity.GreaterThanOrEqual(l.OrderedQuantity)
}

// AddReceivedQuantity adds to the received quantity, rejecting over-receipt
func (l *PurchaseOrderLine) AddReceivedQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Receive quantity for %s must be positive", l.SKU))
	}

	newReceived := l.ReceivedQuantity.Add(quantity)
	if newReceived.GreaterThan(l.OrderedQuantity) {
		return shared.NewDomainError("QUANTITY_EXCEEDED", fmt.Sprintf("Cannot receive %s of %s, only %s remaining", quantity.String(), l.SKU, l.RemainingQuantity().String()))
	}

	l.ReceivedQuantity = newReceived
	l.UpdatedAt = time.Now()

	return nil
}

// ReceiptLineInput represents a single line being received against an order
type ReceiptLineInput struct {
	SKU      string
	Name     string
	Quantity decimal.Decimal
	UoM      string
}

// PurchaseOrder represents an order issued to a supplier from an approved
// purchase request. It is the aggregate root for the order lifecycle and
// tracks per-line received quantities until fully received.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	RequestID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_purchase_order_request"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	Lines        []PurchaseOrderLine `gorm:"foreignKey:OrderID;references:ID"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'ISSUED'"`
	IssuedAt     time.Time           `gorm:"not null"`
	ReceivedAt   *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrderFromRequest issues an order for an approved request,
// snapshotting the request's lines so later request reads cannot drift
// the order's quantities.
func NewPurchaseOrderFromRequest(request *PurchaseRequest, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if request == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase request cannot be nil")
	}
	if !request.IsApproved() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue order for request in %s status", request.Status))
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequestID:         request.ID,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Lines:             make([]PurchaseOrderLine, 0, len(request.Lines)),
		Status:            PurchaseOrderStatusIssued,
		IssuedAt:          time.Now(),
	}

	now := time.Now()
	for _, rl := range request.Lines {
		order.Lines = append(order.Lines, PurchaseOrderLine{
			ID:               uuid.New(),
			OrderID:          order.ID,
			SKU:              rl.SKU,
			Name:             rl.Name,
			OrderedQuantity:  rl.Quantity,
			ReceivedQuantity: decimal.Zero,
			UoM:              rl.UoM,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	order.AddDomainEvent(NewPurchaseOrderIssuedEvent(order))

	return order, nil
}

// ApplyReceipt records received quantities against the order's lines and
// recomputes the order status. Lines not on the order and quantities that
// would exceed the ordered amount are rejected; nothing is clamped.
func (o *PurchaseOrder) ApplyReceipt(lines []ReceiptLineInput) error {
	if !o.Status.CanReceive() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive goods for order in %s status", o.Status))
	}
	if len(lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Receipt lines cannot be empty")
	}

	for _, rl := range lines {
		line := o.GetLineBySKU(rl.SKU)
		if line == nil {
			return shared.NewDomainError("LINE_NOT_ON_ORDER", fmt.Sprintf("SKU %s is not on this order", rl.SKU))
		}
		if err := line.AddReceivedQuantity(rl.Quantity); err != nil {
			return err
		}
	}

	if o.isFullyReceived() {
		o.Status = PurchaseOrderStatusReceived
		now := time.Now()
		o.ReceivedAt = &now
	} else {
		o.Status = PurchaseOrderStatusPartiallyReceived
	}

	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

func (o *PurchaseOrder) isFullyReceived() bool {
	for i := range o.Lines {
		if !o.Lines[i].IsFullyReceived() {
			return false
		}
	}
	return true
}

// GetLineBySKU returns the order line for the given SKU, or nil
func (o *PurchaseOrder) GetLineBySKU(sku string) *PurchaseOrderLine {
	for i := range o.Lines {
		if o.Lines[i].SKU == sku {
			return &o.Lines[i]
		}
	}
	return nil
}

// IsTerminal returns true once the order is fully received
func (o *PurchaseOrder) IsTerminal() bool {
	return o.Status == PurchaseOrderStatusReceived
}

// TotalOrderedQuantity returns the sum of ordered quantities across lines
func (o *PurchaseOrder) TotalOrderedQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].OrderedQuantity)
	}
	return total
}

// TotalReceivedQuantity returns the sum of received quantities across lines
func (o *PurchaseOrder) TotalReceivedQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].ReceivedQuantity)
	}
	return total
}
