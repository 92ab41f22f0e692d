package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/notification"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Role      *string    `json:"role,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToNotificationResponse converts a domain Notification to a response DTO
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	var role *string
	if n.Role != nil {
		r := strings.ToLower(string(*n.Role))
		role = &r
	}
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Role:      role,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationService handles notification delivery and retrieval
type NotificationService struct {
	notificationRepo notification.NotificationRepository
	userRepo         directory.UserRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notification.NotificationRepository, userRepo directory.UserRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// NotifyUser appends a notification addressed to a single user
func (s *NotificationService) NotifyUser(ctx context.Context, userID uuid.UUID, title, message string) error {
	n, err := notification.NewUserNotification(userID, title, message)
	if err != nil {
		return err
	}
	return s.notificationRepo.Create(ctx, n)
}

// NotifyRole appends a notification addressed to all holders of a role
func (s *NotificationService) NotifyRole(ctx context.Context, role directory.UserRole, title, message string) error {
	n, err := notification.NewRoleNotification(role, title, message)
	if err != nil {
		return err
	}
	return s.notificationRepo.Create(ctx, n)
}

// ListFor returns notifications addressed to the user directly or to the
// user's role, newest first.
func (s *NotificationService) ListFor(ctx context.Context, userID uuid.UUID) ([]NotificationResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.FindForRecipient(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = ToNotificationResponse(n)
	}
	return responses, nil
}

// MarkRead flags a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	n.MarkRead()
	if err := s.notificationRepo.Update(ctx, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}
