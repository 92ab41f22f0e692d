package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/procure/backend/internal/application/catalog"
)

// CatalogHandler handles item and supplier API endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CreateItemRequest represents a request to create a catalog item
type CreateItemRequest struct {
	SKU  string `json:"sku" binding:"required,min=1,max=100"`
	Name string `json:"name" binding:"required,min=1,max=200"`
	UoM  string `json:"uom" binding:"required,min=1,max=20"`
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	Code string `json:"code" binding:"required,min=1,max=50"`
}

// CreateItem creates a new catalog item
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), catalogapp.CreateItemRequest{
		SKU:  req.SKU,
		Name: req.Name,
		UoM:  req.UoM,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetItem returns a single item by ID
func (h *CatalogHandler) GetItem(c *gin.Context) {
	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ListItems returns all catalog items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, items, len(items))
}

// CreateSupplier creates a new supplier
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	supplier, err := h.catalogService.CreateSupplier(c.Request.Context(), catalogapp.CreateSupplierRequest{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, supplier)
}

// GetSupplier returns a single supplier by ID
func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.catalogService.GetSupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// ListSuppliers returns all suppliers
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.catalogService.ListSuppliers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.List(c, suppliers, len(suppliers))
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
	}

	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.CreateSupplier)
		suppliers.GET("", h.ListSuppliers)
		suppliers.GET("/:id", h.GetSupplier)
	}
}
