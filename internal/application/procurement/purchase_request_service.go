package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

// PurchaseRequestService handles purchase request business operations
type PurchaseRequestService struct {
	requestRepo    procurement.PurchaseRequestRepository
	userRepo       directory.UserRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseRequestService creates a new PurchaseRequestService
func NewPurchaseRequestService(requestRepo procurement.PurchaseRequestRepository, userRepo directory.UserRepository) *PurchaseRequestService {
	return &PurchaseRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseRequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create submits a new purchase request
func (s *PurchaseRequestService) Create(ctx context.Context, req CreatePurchaseRequestRequest) (*PurchaseRequestResponse, error) {
	requester, err := s.userRepo.FindByID(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Requester does not exist")
		}
		return nil, err
	}
	if requester.Role != directory.RoleEmployee {
		return nil, shared.NewDomainError("FORBIDDEN", "Only employees can raise purchase requests")
	}

	approver, err := s.userRepo.FindByID(ctx, req.ApproverID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Approver does not exist")
		}
		return nil, err
	}
	if !approver.IsManager() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Approver must be a manager")
	}

	lines := make([]procurement.RequestLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = procurement.RequestLineInput{
			SKU:      l.SKU,
			Name:     l.Name,
			Quantity: l.Quantity,
			UoM:      l.UoM,
		}
	}

	request, err := procurement.NewPurchaseRequest(req.RequesterID, req.ApproverID, lines)
	if err != nil {
		return nil, err
	}

	events := request.GetDomainEvents()
	request.ClearDomainEvents()

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	response := ToPurchaseRequestResponse(request)
	return &response, nil
}

// Decide approves or rejects a submitted request. Concurrent decisions on
// the same request are serialized by optimistic locking; the loser observes
// the request already decided.
func (s *PurchaseRequestService) Decide(ctx context.Context, requestID uuid.UUID, req DecidePurchaseRequestRequest) (*PurchaseRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.Approve {
		err = request.Approve(req.ActorID)
	} else {
		err = request.Reject(req.ActorID)
	}
	if err != nil {
		return nil, err
	}

	events := request.GetDomainEvents()
	request.ClearDomainEvents()

	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.ErrConcurrencyConflict.Code {
			// Lost the race: report the state the winner left behind
			current, findErr := s.requestRepo.FindByID(ctx, requestID)
			if findErr == nil && !current.IsPending() {
				return nil, shared.NewDomainError("INVALID_STATE", "Request has already been decided")
			}
		}
		return nil, err
	}

	s.publish(ctx, events)

	response := ToPurchaseRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a purchase request by ID
func (s *PurchaseRequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*PurchaseRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseRequestResponse(request)
	return &response, nil
}

// ListByRequester returns all requests raised by a user
func (s *PurchaseRequestService) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]PurchaseRequestResponse, error) {
	requests, err := s.requestRepo.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseRequestResponses(requests), nil
}

// ListPendingForApprover returns submitted requests awaiting a manager
func (s *PurchaseRequestService) ListPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]PurchaseRequestResponse, error) {
	requests, err := s.requestRepo.FindPendingForApprover(ctx, approverID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseRequestResponses(requests), nil
}

// ListByStatus returns all requests in the given status
func (s *PurchaseRequestService) ListByStatus(ctx context.Context, status procurement.PurchaseRequestStatus) ([]PurchaseRequestResponse, error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown request status: "+string(status))
	}
	requests, err := s.requestRepo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return ToPurchaseRequestResponses(requests), nil
}

// ListAll returns all requests
func (s *PurchaseRequestService) ListAll(ctx context.Context) ([]PurchaseRequestResponse, error) {
	requests, err := s.requestRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToPurchaseRequestResponses(requests), nil
}

func (s *PurchaseRequestService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Notification fan-out is best effort; command outcome is already durable
	_ = s.eventPublisher.Publish(ctx, events...)
}
