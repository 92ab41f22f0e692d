package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/catalog"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo      procurement.PurchaseOrderRepository
	requestRepo    procurement.PurchaseRequestRepository
	supplierRepo   catalog.SupplierRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo procurement.PurchaseOrderRepository,
	requestRepo procurement.PurchaseRequestRepository,
	supplierRepo catalog.SupplierRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		requestRepo:  requestRepo,
		supplierRepo: supplierRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create issues a purchase order for an approved request. At most one
// order can ever be issued per request; a unique index on the request
// reference backstops the application-level check.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Supplier does not exist")
		}
		return nil, err
	}

	exists, err := s.orderRepo.ExistsByRequestID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Request already has a purchase order")
	}

	order, err := procurement.NewPurchaseOrderFromRequest(request, supplier.ID, supplier.Name)
	if err != nil {
		return nil, err
	}

	events := order.GetDomainEvents()
	order.ClearDomainEvents()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Two issuers can pass the existence check together; the unique
		// index lets exactly one create succeed
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrAlreadyExists.Code {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Request already has a purchase order")
		}
		return nil, err
	}

	s.publish(ctx, events)

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// ListAll returns all purchase orders
func (s *PurchaseOrderService) ListAll(ctx context.Context) ([]PurchaseOrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponses(orders), nil
}

func (s *PurchaseOrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
