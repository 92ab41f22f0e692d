package procurement

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseRequestRepository defines the interface for purchase request persistence
type PurchaseRequestRepository interface {
	// Create creates a new purchase request with its lines
	Create(ctx context.Context, request *PurchaseRequest) error

	// SaveWithLock saves with optimistic locking (version check).
	// Returns a concurrency conflict error when the stored version differs.
	SaveWithLock(ctx context.Context, request *PurchaseRequest) error

	// FindByID finds a request by ID including its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseRequest, error)

	// FindByRequester returns all requests raised by a user, oldest first
	FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*PurchaseRequest, error)

	// FindPendingForApprover returns submitted requests awaiting a manager, oldest first
	FindPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]*PurchaseRequest, error)

	// FindByStatus returns all requests in the given status, oldest first
	FindByStatus(ctx context.Context, status PurchaseRequestStatus) ([]*PurchaseRequest, error)

	// FindAll returns all requests, oldest first
	FindAll(ctx context.Context) ([]*PurchaseRequest, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// Create creates a new purchase order with its lines
	Create(ctx context.Context, order *PurchaseOrder) error

	// SaveWithLock saves with optimistic locking (version check).
	// Returns a concurrency conflict error when the stored version differs.
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error

	// FindByID finds an order by ID including its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByRequestID finds the order issued for a request, if any
	FindByRequestID(ctx context.Context, requestID uuid.UUID) (*PurchaseOrder, error)

	// ExistsByRequestID checks whether a request already has an order
	ExistsByRequestID(ctx context.Context, requestID uuid.UUID) (bool, error)

	// FindAll returns all orders, oldest first
	FindAll(ctx context.Context) ([]*PurchaseOrder, error)
}

// GoodsReceiptRepository defines the interface for goods receipt persistence
type GoodsReceiptRepository interface {
	// Create creates a new goods receipt with its lines
	Create(ctx context.Context, receipt *GoodsReceipt) error

	// FindByID finds a receipt by ID including its lines
	FindByID(ctx context.Context, id uuid.UUID) (*GoodsReceipt, error)

	// FindByOrderID returns all receipts recorded against an order, oldest first
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*GoodsReceipt, error)

	// FindAll returns all receipts, oldest first
	FindAll(ctx context.Context) ([]*GoodsReceipt, error)
}
