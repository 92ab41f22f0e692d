package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	procurementapp "github.com/procure/backend/internal/application/procurement"
)

// GoodsReceiptHandler handles goods receipt API endpoints
type GoodsReceiptHandler struct {
	BaseHandler
	receiptService *procurementapp.GoodsReceiptService
}

// NewGoodsReceiptHandler creates a new GoodsReceiptHandler
func NewGoodsReceiptHandler(receiptService *procurementapp.GoodsReceiptService) *GoodsReceiptHandler {
	return &GoodsReceiptHandler{receiptService: receiptService}
}

// RecordGoodsReceiptRequest represents a request to record a delivery
type RecordGoodsReceiptRequest struct {
	OrderID string        `json:"po_id" binding:"required,uuid"`
	Lines   []RequestLine `json:"lines" binding:"required,min=1,dive"`
}

// Record registers a delivery against a purchase order and updates inventory
func (h *GoodsReceiptHandler) Record(c *gin.Context) {
	var req RecordGoodsReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	result, err := h.receiptService.Record(c.Request.Context(), procurementapp.RecordGoodsReceiptRequest{
		OrderID: orderID,
		Lines:   toLineRequests(req.Lines),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single goods receipt by ID
func (h *GoodsReceiptHandler) Get(c *gin.Context) {
	receiptID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid goods receipt ID")
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), receiptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// List returns goods receipts, optionally filtered by purchase order
func (h *GoodsReceiptHandler) List(c *gin.Context) {
	if order := c.Query("po_id"); order != "" {
		orderID, err := uuid.Parse(order)
		if err != nil {
			h.BadRequest(c, "Invalid purchase order ID")
			return
		}
		receipts, err := h.receiptService.ListByOrder(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.BaseHandler.List(c, receipts, len(receipts))
		return
	}

	receipts, err := h.receiptService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, receipts, len(receipts))
}

// RegisterRoutes registers goods receipt routes
func (h *GoodsReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/goods-receipts")
	{
		receipts.POST("", h.Record)
		receipts.GET("", h.List)
		receipts.GET("/:id", h.Get)
	}
}
