package catalog

import (
	"strings"
	"time"

	"github.com/procure/backend/internal/domain/shared"
)

// Supplier represents a vendor purchase orders can be placed with.
// It is the aggregate root for supplier operations.
type Supplier struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(200);not null"`
	Code string `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_code"` // Short unique vendor code, e.g. "ACME"
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, code string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier name cannot exceed 200 characters")
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier code cannot exceed 50 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
	}, nil
}

// Rename changes the supplier's display name
func (s *Supplier) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Supplier name cannot be empty")
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}
