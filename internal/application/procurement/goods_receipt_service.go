package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/inventory"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

// GoodsReceiptService records deliveries against purchase orders and
// applies them to inventory in a single transaction.
type GoodsReceiptService struct {
	receiptRepo    procurement.GoodsReceiptRepository
	orderRepo      procurement.PurchaseOrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewGoodsReceiptService creates a new GoodsReceiptService
func NewGoodsReceiptService(
	receiptRepo procurement.GoodsReceiptRepository,
	orderRepo procurement.PurchaseOrderRepository,
	txScope TransactionScope,
) *GoodsReceiptService {
	return &GoodsReceiptService{
		receiptRepo: receiptRepo,
		orderRepo:   orderRepo,
		txScope:     txScope,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *GoodsReceiptService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Record validates a delivery against its order and persists the receipt,
// the order's updated received quantities and status, and the additive
// inventory changes atomically. A failed validation leaves no state behind.
func (s *GoodsReceiptService) Record(ctx context.Context, req RecordGoodsReceiptRequest) (*RecordGoodsReceiptResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	lines := make([]procurement.ReceiptLineInput, len(req.Lines))
	for i, l := range req.Lines {
		name := l.Name
		uom := l.UoM
		// Fill display fields from the order line when the caller omits them
		if ol := order.GetLineBySKU(l.SKU); ol != nil {
			if name == "" {
				name = ol.Name
			}
			if uom == "" {
				uom = ol.UoM
			}
		}
		lines[i] = procurement.ReceiptLineInput{
			SKU:      l.SKU,
			Name:     name,
			Quantity: l.Quantity,
			UoM:      uom,
		}
	}

	receipt, err := procurement.NewGoodsReceipt(order.ID, lines)
	if err != nil {
		return nil, err
	}

	if err := order.ApplyReceipt(lines); err != nil {
		return nil, err
	}

	events := append(receipt.GetDomainEvents(), order.GetDomainEvents()...)
	receipt.ClearDomainEvents()
	order.ClearDomainEvents()

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ReceiptRepo().Create(ctx, receipt); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}
		return s.applyToInventory(ctx, repos.InventoryRepo(), receipt)
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrConcurrencyConflict.Code {
			// Lost a race with another receipt; the caller should re-read
			// the order and retry with the remaining quantities
			current, findErr := s.orderRepo.FindByID(ctx, req.OrderID)
			if findErr == nil && current.IsTerminal() {
				return nil, shared.NewDomainError("INVALID_STATE", "Order has already been fully received")
			}
		}
		return nil, err
	}

	s.publish(ctx, events)

	return &RecordGoodsReceiptResponse{
		Receipt: ToGoodsReceiptResponse(receipt),
		Order:   ToPurchaseOrderResponse(order),
	}, nil
}

// applyToInventory adds each received line to its SKU's on-hand record,
// creating the record on first receipt. The increment runs inside the
// store; receipts for the same SKU landing through different orders must
// both count.
func (s *GoodsReceiptService) applyToInventory(ctx context.Context, repo inventory.InventoryRepository, receipt *procurement.GoodsReceipt) error {
	for i := range receipt.Lines {
		line := &receipt.Lines[i]

		err := repo.AddOnHand(ctx, line.SKU, line.Quantity)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		record, err := inventory.NewInventoryRecord(line.SKU, line.Name, line.UoM)
		if err != nil {
			return err
		}
		if err := record.AddQuantity(line.Quantity); err != nil {
			return err
		}
		if err := repo.Create(ctx, record); err != nil {
			if !errors.Is(err, shared.ErrAlreadyExists) {
				return err
			}
			// Another receipt created the record first; add to it instead
			if err := repo.AddOnHand(ctx, line.SKU, line.Quantity); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetByID retrieves a goods receipt by ID
func (s *GoodsReceiptService) GetByID(ctx context.Context, receiptID uuid.UUID) (*GoodsReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	response := ToGoodsReceiptResponse(receipt)
	return &response, nil
}

// ListByOrder returns all receipts recorded against an order
func (s *GoodsReceiptService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]GoodsReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToGoodsReceiptResponses(receipts), nil
}

// ListAll returns all goods receipts
func (s *GoodsReceiptService) ListAll(ctx context.Context) ([]GoodsReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToGoodsReceiptResponses(receipts), nil
}

func (s *GoodsReceiptService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
