package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/directory"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, n *Notification) error

	// Update updates an existing notification
	Update(ctx context.Context, n *Notification) error

	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindForRecipient returns notifications addressed to the user directly
	// or to the user's role, newest first
	FindForRecipient(ctx context.Context, userID uuid.UUID, role directory.UserRole) ([]*Notification, error)

	// FindAll returns all notifications, newest first
	FindAll(ctx context.Context) ([]*Notification, error)
}
