package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/shared"
)

// Notification is a durable message addressed to a specific user or to
// everyone holding a role. Exactly one of UserID and Role is set.
type Notification struct {
	shared.BaseAggregateRoot
	UserID  *uuid.UUID          `gorm:"type:uuid;index"`
	Role    *directory.UserRole `gorm:"type:varchar(20);index"`
	Title   string              `gorm:"type:varchar(200);not null"`
	Message string              `gorm:"type:text;not null"`
	Read    bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewUserNotification creates a notification addressed to a single user
func NewUserNotification(userID uuid.UUID, title, message string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User ID cannot be empty")
	}
	if err := validateContent(title, message); err != nil {
		return nil, err
	}

	return &Notification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            &userID,
		Title:             strings.TrimSpace(title),
		Message:           strings.TrimSpace(message),
	}, nil
}

// NewRoleNotification creates a notification addressed to all holders of a role
func NewRoleNotification(role directory.UserRole, title, message string) (*Notification, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role: "+string(role))
	}
	if err := validateContent(title, message); err != nil {
		return nil, err
	}

	return &Notification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Role:              &role,
		Title:             strings.TrimSpace(title),
		Message:           strings.TrimSpace(message),
	}, nil
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	n.Read = true
	n.UpdatedAt = time.Now()
	n.IncrementVersion()
}

func validateContent(title, message string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Notification title cannot be empty")
	}
	if strings.TrimSpace(message) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Notification message cannot be empty")
	}
	return nil
}
