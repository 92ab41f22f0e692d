package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	procurementapp "github.com/procure/backend/internal/application/procurement"
	"github.com/procure/backend/internal/domain/procurement"
)

// PurchaseRequestHandler handles purchase request API endpoints
type PurchaseRequestHandler struct {
	BaseHandler
	requestService *procurementapp.PurchaseRequestService
}

// NewPurchaseRequestHandler creates a new PurchaseRequestHandler
func NewPurchaseRequestHandler(requestService *procurementapp.PurchaseRequestService) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{requestService: requestService}
}

// RequestLine represents a line item in a purchase request or goods receipt body
type RequestLine struct {
	SKU      string  `json:"sku" binding:"required,min=1,max=100"`
	Name     string  `json:"name" binding:"max=200"`
	Quantity float64 `json:"qty" binding:"required,gt=0"`
	UoM      string  `json:"uom" binding:"max=20"`
}

// CreatePurchaseRequestRequest represents a request to submit a purchase request
type CreatePurchaseRequestRequest struct {
	RequesterID string        `json:"employee_id" binding:"required,uuid"`
	ApproverID  string        `json:"manager_id" binding:"required,uuid"`
	Lines       []RequestLine `json:"lines" binding:"required,min=1,dive"`
}

// DecideRequest represents an approve or reject decision
type DecideRequest struct {
	ActorID  string `json:"actor_id" binding:"required,uuid"`
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// Create submits a new purchase request
func (h *PurchaseRequestHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}
	approverID, err := uuid.Parse(req.ApproverID)
	if err != nil {
		h.BadRequest(c, "Invalid manager ID")
		return
	}

	appReq := procurementapp.CreatePurchaseRequestRequest{
		RequesterID: requesterID,
		ApproverID:  approverID,
		Lines:       toLineRequests(req.Lines),
	}

	request, err := h.requestService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// Decide approves or rejects a submitted purchase request
func (h *PurchaseRequestHandler) Decide(c *gin.Context) {
	requestID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase request ID")
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}

	request, err := h.requestService.Decide(c.Request.Context(), requestID, procurementapp.DecidePurchaseRequestRequest{
		ActorID: actorID,
		Approve: req.Decision == "approve",
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Get returns a single purchase request by ID
func (h *PurchaseRequestHandler) Get(c *gin.Context) {
	requestID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase request ID")
		return
	}

	request, err := h.requestService.GetByID(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// List returns purchase requests, filtered by requester, pending approver or status
func (h *PurchaseRequestHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if requester := c.Query("employee_id"); requester != "" {
		requesterID, err := uuid.Parse(requester)
		if err != nil {
			h.BadRequest(c, "Invalid employee ID")
			return
		}
		requests, err := h.requestService.ListByRequester(ctx, requesterID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.BaseHandler.List(c, requests, len(requests))
		return
	}

	if approver := c.Query("pending_for"); approver != "" {
		approverID, err := uuid.Parse(approver)
		if err != nil {
			h.BadRequest(c, "Invalid manager ID")
			return
		}
		requests, err := h.requestService.ListPendingForApprover(ctx, approverID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.BaseHandler.List(c, requests, len(requests))
		return
	}

	if status := c.Query("status"); status != "" {
		requests, err := h.requestService.ListByStatus(ctx, procurement.PurchaseRequestStatus(normalizeStatus(status)))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.BaseHandler.List(c, requests, len(requests))
		return
	}

	requests, err := h.requestService.ListAll(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, requests, len(requests))
}

// RegisterRoutes registers purchase request routes
func (h *PurchaseRequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/purchase-requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.List)
		requests.GET("/:id", h.Get)
		requests.POST("/:id/decision", h.Decide)
	}
}

func toLineRequests(lines []RequestLine) []procurementapp.RequestLineRequest {
	out := make([]procurementapp.RequestLineRequest, len(lines))
	for i, line := range lines {
		out[i] = procurementapp.RequestLineRequest{
			SKU:      line.SKU,
			Name:     line.Name,
			Quantity: toDecimal(line.Quantity),
			UoM:      line.UoM,
		}
	}
	return out
}
