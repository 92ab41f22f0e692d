package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

// PurchaseRequestSubmittedHandler notifies the assigned approver when a
// new request enters the flow.
type PurchaseRequestSubmittedHandler struct {
	notificationService *NotificationService
	logger              *zap.Logger
}

// NewPurchaseRequestSubmittedHandler creates a new handler for request submitted events
func NewPurchaseRequestSubmittedHandler(notificationService *NotificationService, logger *zap.Logger) *PurchaseRequestSubmittedHandler {
	return &PurchaseRequestSubmittedHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PurchaseRequestSubmittedHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseRequestSubmitted}
}

// Handle processes a PurchaseRequestSubmittedEvent
func (h *PurchaseRequestSubmittedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	submitted, ok := event.(*procurement.PurchaseRequestSubmittedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", procurement.EventTypePurchaseRequestSubmitted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypePurchaseRequestSubmitted, event.EventType())
	}

	h.logger.Info("notifying approver of submitted request",
		zap.String("request_id", submitted.RequestID.String()),
		zap.String("approver_id", submitted.ApproverID.String()),
	)

	message := fmt.Sprintf("Purchase request %s with %d line(s) is awaiting your decision", submitted.RequestID, len(submitted.Lines))
	return h.notificationService.NotifyUser(ctx, submitted.ApproverID, "Purchase request awaiting approval", message)
}

// PurchaseRequestDecidedHandler notifies the requester once their request
// has been approved or rejected.
type PurchaseRequestDecidedHandler struct {
	notificationService *NotificationService
	logger              *zap.Logger
}

// NewPurchaseRequestDecidedHandler creates a new handler for request decided events
func NewPurchaseRequestDecidedHandler(notificationService *NotificationService, logger *zap.Logger) *PurchaseRequestDecidedHandler {
	return &PurchaseRequestDecidedHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PurchaseRequestDecidedHandler) EventTypes() []string {
	return []string{procurement.EventTypePurchaseRequestDecided}
}

// Handle processes a PurchaseRequestDecidedEvent
func (h *PurchaseRequestDecidedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	decided, ok := event.(*procurement.PurchaseRequestDecidedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", procurement.EventTypePurchaseRequestDecided),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypePurchaseRequestDecided, event.EventType())
	}

	h.logger.Info("notifying requester of decision",
		zap.String("request_id", decided.RequestID.String()),
		zap.String("status", string(decided.Status)),
	)

	var title string
	if decided.Status == procurement.PurchaseRequestStatusApproved {
		title = "Purchase request approved"
	} else {
		title = "Purchase request rejected"
	}
	message := fmt.Sprintf("Your purchase request %s was %s", decided.RequestID, decided.Status)
	return h.notificationService.NotifyUser(ctx, decided.RequesterID, title, message)
}

// GoodsReceiptRecordedHandler notifies the purchasing role when a delivery
// has been recorded.
type GoodsReceiptRecordedHandler struct {
	notificationService *NotificationService
	logger              *zap.Logger
}

// NewGoodsReceiptRecordedHandler creates a new handler for goods receipt events
func NewGoodsReceiptRecordedHandler(notificationService *NotificationService, logger *zap.Logger) *GoodsReceiptRecordedHandler {
	return &GoodsReceiptRecordedHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *GoodsReceiptRecordedHandler) EventTypes() []string {
	return []string{procurement.EventTypeGoodsReceiptRecorded}
}

// Handle processes a GoodsReceiptRecordedEvent
func (h *GoodsReceiptRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	recorded, ok := event.(*procurement.GoodsReceiptRecordedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", procurement.EventTypeGoodsReceiptRecorded),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypeGoodsReceiptRecorded, event.EventType())
	}

	h.logger.Info("notifying purchasing of recorded receipt",
		zap.String("receipt_id", recorded.ReceiptID.String()),
		zap.String("order_id", recorded.OrderID.String()),
		zap.Int("line_count", len(recorded.Lines)),
	)

	message := fmt.Sprintf("Goods receipt %s recorded %d line(s) against order %s", recorded.ReceiptID, len(recorded.Lines), recorded.OrderID)
	return h.notificationService.NotifyRole(ctx, directory.RolePurchasing, "Goods receipt recorded", message)
}

// Ensure handlers implement shared.EventHandler
var _ shared.EventHandler = (*PurchaseRequestSubmittedHandler)(nil)
var _ shared.EventHandler = (*PurchaseRequestDecidedHandler)(nil)
var _ shared.EventHandler = (*GoodsReceiptRecordedHandler)(nil)
