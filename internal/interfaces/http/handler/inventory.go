package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/procure/backend/internal/application/inventory"
)

// InventoryHandler handles inventory ledger API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetBySKU returns the on-hand record for a single SKU
func (h *InventoryHandler) GetBySKU(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "SKU is required")
		return
	}

	record, err := h.inventoryService.GetBySKU(c.Request.Context(), sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// List returns all inventory records
func (h *InventoryHandler) List(c *gin.Context) {
	records, err := h.inventoryService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.BaseHandler.List(c, records, len(records))
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.List)
		inventory.GET("/:sku", h.GetBySKU)
	}
}
