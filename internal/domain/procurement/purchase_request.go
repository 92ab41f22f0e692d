package procurement

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/shared"
)

// PurchaseRequestStatus represents the status of a purchase request
type PurchaseRequestStatus string

const (
	PurchaseRequestStatusSubmitted PurchaseRequestStatus = "SUBMITTED"
	PurchaseRequestStatusApproved  PurchaseRequestStatus = "APPROVED"
	PurchaseRequestStatusRejected  PurchaseRequestStatus = "REJECTED"
)

// IsValid checks if the status is a valid PurchaseRequestStatus
func (s PurchaseRequestStatus) IsValid() bool {
	switch s {
	case PurchaseRequestStatusSubmitted, PurchaseRequestStatusApproved, PurchaseRequestStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of PurchaseRequestStatus
func (s PurchaseRequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseRequestStatus) CanTransitionTo(target PurchaseRequestStatus) bool {
	switch s {
	case PurchaseRequestStatusSubmitted:
		return target == PurchaseRequestStatusApproved || target == PurchaseRequestStatusRejected
	case PurchaseRequestStatusApproved, PurchaseRequestStatusRejected:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true when no further decision is possible
func (s PurchaseRequestStatus) IsTerminal() bool {
	return s == PurchaseRequestStatusApproved || s == PurchaseRequestStatusRejected
}

// PurchaseRequestLine represents a requested item on a purchase request
type PurchaseRequestLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequestID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"type:varchar(100);not null"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UoM       string          `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseRequestLine) TableName() string {
	return "purchase_request_lines"
}

// RequestLineInput carries the fields needed to build a request line
type RequestLineInput struct {
	SKU      string
	Name     string
	Quantity decimal.Decimal
	UoM      string
}

func newPurchaseRequestLine(requestID uuid.UUID, input RequestLineInput) (*PurchaseRequestLine, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_LINE", "Line SKU cannot be empty")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Line name for %s cannot be empty", sku))
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Quantity for %s must be positive", sku))
	}
	uom := strings.TrimSpace(input.UoM)
	if uom == "" {
		return nil, shared.NewDomainError("INVALID_LINE", fmt.Sprintf("Unit of measure for %s cannot be empty", sku))
	}

	return &PurchaseRequestLine{
		ID:        uuid.New(),
		RequestID: requestID,
		SKU:       sku,
		Name:      name,
		Quantity:  input.Quantity,
		UoM:       uom,
		CreatedAt: time.Now(),
	}, nil
}

// PurchaseRequest represents an employee's request for goods.
// It is the aggregate root for the request lifecycle: born submitted,
// decided exactly once by its assigned approver.
type PurchaseRequest struct {
	shared.BaseAggregateRoot
	RequesterID uuid.UUID             `gorm:"type:uuid;not null;index"`
	ApproverID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Lines       []PurchaseRequestLine `gorm:"foreignKey:RequestID;references:ID"`
	Status      PurchaseRequestStatus `gorm:"type:varchar(20);not null;default:'SUBMITTED'"`
	SubmittedAt time.Time             `gorm:"not null"`
	DecidedAt   *time.Time
}

// TableName returns the table name for GORM
func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}

// NewPurchaseRequest creates a submitted purchase request
func NewPurchaseRequest(requesterID, approverID uuid.UUID, lines []RequestLineInput) (*PurchaseRequest, error) {
	if requesterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requester ID cannot be empty")
	}
	if approverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Approver ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_LINES", "Purchase request must have at least one line")
	}

	request := &PurchaseRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequesterID:       requesterID,
		ApproverID:        approverID,
		Lines:             make([]PurchaseRequestLine, 0, len(lines)),
		Status:            PurchaseRequestStatusSubmitted,
		SubmittedAt:       time.Now(),
	}

	for _, input := range lines {
		line, err := newPurchaseRequestLine(request.ID, input)
		if err != nil {
			return nil, err
		}
		request.Lines = append(request.Lines, *line)
	}

	request.AddDomainEvent(NewPurchaseRequestSubmittedEvent(request))

	return request, nil
}

// Approve marks the request approved by the acting manager
func (r *PurchaseRequest) Approve(actorID uuid.UUID) error {
	return r.decide(actorID, PurchaseRequestStatusApproved)
}

// Reject marks the request rejected by the acting manager
func (r *PurchaseRequest) Reject(actorID uuid.UUID) error {
	return r.decide(actorID, PurchaseRequestStatusRejected)
}

func (r *PurchaseRequest) decide(actorID uuid.UUID, target PurchaseRequestStatus) error {
	if actorID != r.ApproverID {
		return shared.NewDomainError("FORBIDDEN", "Only the assigned approver can decide this request")
	}
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Request in %s status has already been decided", r.Status))
	}

	now := time.Now()
	r.Status = target
	r.DecidedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewPurchaseRequestDecidedEvent(r))

	return nil
}

// IsPending returns true while the request awaits a decision
func (r *PurchaseRequest) IsPending() bool {
	return r.Status == PurchaseRequestStatusSubmitted
}

// IsApproved returns true once the request has been approved
func (r *PurchaseRequest) IsApproved() bool {
	return r.Status == PurchaseRequestStatusApproved
}

// LineCount returns the number of lines on the request
func (r *PurchaseRequest) LineCount() int {
	return len(r.Lines)
}
