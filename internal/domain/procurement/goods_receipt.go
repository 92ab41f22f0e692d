package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/shared"
)

// GoodsReceiptLine represents a received item on a goods receipt
type GoodsReceiptLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"type:varchar(100);not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UoM       string          `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GoodsReceiptLine) TableName() string {
	return "goods_receipt_lines"
}

// GoodsReceipt records a delivery against a purchase order. It is an
// append-only aggregate: once recorded it is never modified.
type GoodsReceipt struct {
	shared.BaseAggregateRoot
	OrderID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Lines   []GoodsReceiptLine `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (GoodsReceipt) TableName() string {
	return "goods_receipts"
}

// NewGoodsReceipt creates a goods receipt for the given order
func NewGoodsReceipt(orderID uuid.UUID, lines []ReceiptLineInput) (*GoodsReceipt, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_LINES", "Goods receipt must have at least one line")
	}

	receipt := &GoodsReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Lines:             make([]GoodsReceiptLine, 0, len(lines)),
	}

	now := time.Now()
	for _, input := range lines {
		sku := strings.TrimSpace(input.SKU)
		if sku == "" {
			return nil, shared.NewDomainError("INVALID_LINE", "Receipt line SKU cannot be empty")
		}
		if input.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Received quantity for %s must be positive", sku))
		}

		receipt.Lines = append(receipt.Lines, GoodsReceiptLine{
			ID:        uuid.New(),
			ReceiptID: receipt.ID,
			SKU:       sku,
			Name:      strings.TrimSpace(input.Name),
			Quantity:  input.Quantity,
			UoM:       strings.TrimSpace(input.UoM),
			CreatedAt: now,
		})
	}

	receipt.AddDomainEvent(NewGoodsReceiptRecordedEvent(receipt))

	return receipt, nil
}

// LineCount returns the number of lines on the receipt
func (g *GoodsReceipt) LineCount() int {
	return len(g.Lines)
}

// TotalQuantity returns the sum of received quantities on the receipt
func (g *GoodsReceipt) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range g.Lines {
		total = total.Add(g.Lines[i].Quantity)
	}
	return total
}
