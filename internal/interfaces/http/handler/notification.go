package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	notificationapp "github.com/procure/backend/internal/application/notification"
)

// NotificationHandler handles notification API endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns notifications addressed to a user directly or via their role
func (h *NotificationHandler) List(c *gin.Context) {
	user := c.Query("user_id")
	if user == "" {
		h.BadRequest(c, "user_id is required")
		return
	}
	userID, err := uuid.Parse(user)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	notifications, err := h.notificationService.ListFor(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.BaseHandler.List(c, notifications, len(notifications))
}

// MarkRead marks a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), notificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notification)
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("/:id/read", h.MarkRead)
	}
}
