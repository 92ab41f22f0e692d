package directory

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/shared"
)

// UserRole represents the function a user performs in the procurement flow
type UserRole string

const (
	RoleEmployee   UserRole = "EMPLOYEE"   // Raises purchase requests
	RoleManager    UserRole = "MANAGER"    // Approves or rejects requests
	RolePurchasing UserRole = "PURCHASING" // Issues orders and records receipts
)

// IsValid checks if the role is a known value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RolePurchasing:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r UserRole) String() string {
	return string(r)
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a person participating in the procurement flow.
// It is the aggregate root for directory operations.
type User struct {
	shared.BaseAggregateRoot
	Name      string     `gorm:"type:varchar(200);not null"`
	Email     string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_user_email"`
	Role      UserRole   `gorm:"type:varchar(20);not null"`
	ManagerID *uuid.UUID `gorm:"type:uuid"` // Approving manager, required for employees
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with required fields
func NewUser(name, email string, role UserRole, managerID *uuid.UUID) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_INPUT", "User name cannot exceed 200 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown user role: "+string(role))
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              role,
		ManagerID:         managerID,
	}, nil
}

// IsManager reports whether the user can decide purchase requests
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// Rename changes the user's display name
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "User name cannot be empty")
	}

	u.Name = name
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// AssignManager links the user to an approving manager
func (u *User) AssignManager(managerID uuid.UUID) {
	u.ManagerID = &managerID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_INPUT", "Invalid email format")
	}
	return nil
}
