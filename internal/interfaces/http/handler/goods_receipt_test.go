package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	procurementapp "github.com/procure/backend/internal/application/procurement"
	"github.com/procure/backend/internal/domain/inventory"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

type mockPurchaseOrderRepository struct {
	orders map[uuid.UUID]*procurement.PurchaseOrder
}

func newMockPurchaseOrderRepository() *mockPurchaseOrderRepository {
	return &mockPurchaseOrderRepository{orders: make(map[uuid.UUID]*procurement.PurchaseOrder)}
}

// copyOrder detaches the stored aggregate so callers mutate their own copy,
// the way a row read from the database would behave
func copyOrder(order *procurement.PurchaseOrder) *procurement.PurchaseOrder {
	dup := *order
	dup.Lines = append([]procurement.PurchaseOrderLine(nil), order.Lines...)
	return &dup
}

func (m *mockPurchaseOrderRepository) Create(ctx context.Context, order *procurement.PurchaseOrder) error {
	for _, existing := range m.orders {
		if existing.RequestID == order.RequestID {
			return shared.ErrAlreadyExists
		}
	}
	m.orders[order.ID] = copyOrder(order)
	return nil
}

func (m *mockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	stored, ok := m.orders[order.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != order.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	m.orders[order.ID] = copyOrder(order)
	return nil
}

func (m *mockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	if order, ok := m.orders[id]; ok {
		return copyOrder(order), nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockPurchaseOrderRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*procurement.PurchaseOrder, error) {
	for _, order := range m.orders {
		if order.RequestID == requestID {
			return copyOrder(order), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockPurchaseOrderRepository) ExistsByRequestID(ctx context.Context, requestID uuid.UUID) (bool, error) {
	_, err := m.FindByRequestID(ctx, requestID)
	return err == nil, nil
}

func (m *mockPurchaseOrderRepository) FindAll(ctx context.Context) ([]*procurement.PurchaseOrder, error) {
	result := make([]*procurement.PurchaseOrder, 0, len(m.orders))
	for _, order := range m.orders {
		result = append(result, order)
	}
	return result, nil
}

type mockGoodsReceiptRepository struct {
	receipts map[uuid.UUID]*procurement.GoodsReceipt
}

func newMockGoodsReceiptRepository() *mockGoodsReceiptRepository {
	return &mockGoodsReceiptRepository{receipts: make(map[uuid.UUID]*procurement.GoodsReceipt)}
}

func (m *mockGoodsReceiptRepository) Create(ctx context.Context, receipt *procurement.GoodsReceipt) error {
	m.receipts[receipt.ID] = receipt
	return nil
}

func (m *mockGoodsReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.GoodsReceipt, error) {
	if receipt, ok := m.receipts[id]; ok {
		return receipt, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockGoodsReceiptRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*procurement.GoodsReceipt, error) {
	var result []*procurement.GoodsReceipt
	for _, receipt := range m.receipts {
		if receipt.OrderID == orderID {
			result = append(result, receipt)
		}
	}
	return result, nil
}

func (m *mockGoodsReceiptRepository) FindAll(ctx context.Context) ([]*procurement.GoodsReceipt, error) {
	result := make([]*procurement.GoodsReceipt, 0, len(m.receipts))
	for _, receipt := range m.receipts {
		result = append(result, receipt)
	}
	return result, nil
}

type mockInventoryRepository struct {
	records map[uuid.UUID]*inventory.InventoryRecord
}

func newMockInventoryRepository() *mockInventoryRepository {
	return &mockInventoryRepository{records: make(map[uuid.UUID]*inventory.InventoryRecord)}
}

func (m *mockInventoryRepository) Create(ctx context.Context, record *inventory.InventoryRecord) error {
	m.records[record.ID] = record
	return nil
}

func (m *mockInventoryRepository) AddOnHand(ctx context.Context, sku string, quantity decimal.Decimal) error {
	for _, record := range m.records {
		if record.SKU == sku {
			record.OnHand = record.OnHand.Add(quantity)
			record.Version++
			return nil
		}
	}
	return shared.ErrNotFound
}

func (m *mockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	if record, ok := m.records[id]; ok {
		return record, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockInventoryRepository) FindBySKU(ctx context.Context, sku string) (*inventory.InventoryRecord, error) {
	for _, record := range m.records {
		if record.SKU == sku {
			return record, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *mockInventoryRepository) FindAll(ctx context.Context) ([]*inventory.InventoryRecord, error) {
	result := make([]*inventory.InventoryRecord, 0, len(m.records))
	for _, record := range m.records {
		result = append(result, record)
	}
	return result, nil
}

type receiptHandlerFixture struct {
	router        *gin.Engine
	orderRepo     *mockPurchaseOrderRepository
	receiptRepo   *mockGoodsReceiptRepository
	inventoryRepo *mockInventoryRepository
	order         *procurement.PurchaseOrder
}

func newReceiptHandlerFixture(t *testing.T) *receiptHandlerFixture {
	t.Helper()

	orderRepo := newMockPurchaseOrderRepository()
	receiptRepo := newMockGoodsReceiptRepository()
	inventoryRepo := newMockInventoryRepository()

	request, err := procurement.NewPurchaseRequest(uuid.New(), uuid.New(), []procurement.RequestLineInput{
		{SKU: "SKU-001", Name: "Laptop", Quantity: decimal.NewFromInt(2), UoM: "pcs"},
		{SKU: "SKU-002", Name: "Monitor", Quantity: decimal.NewFromInt(3), UoM: "pcs"},
	})
	require.NoError(t, err)
	require.NoError(t, request.Approve(request.ApproverID))

	order, err := procurement.NewPurchaseOrderFromRequest(request, uuid.New(), "Acme Supplies")
	require.NoError(t, err)
	order.ClearDomainEvents()
	require.NoError(t, orderRepo.Create(context.Background(), order))

	scope := procurementapp.NewNoOpTransactionScope(receiptRepo, orderRepo, inventoryRepo)
	service := procurementapp.NewGoodsReceiptService(receiptRepo, orderRepo, scope)
	h := NewGoodsReceiptHandler(service)

	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))

	return &receiptHandlerFixture{
		router:        router,
		orderRepo:     orderRepo,
		receiptRepo:   receiptRepo,
		inventoryRepo: inventoryRepo,
		order:         order,
	}
}

func (f *receiptHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestGoodsReceiptHandler_Record_Partial(t *testing.T) {
	f := newReceiptHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": f.order.ID.String(),
		"lines": []map[string]any{
			{"sku": "SKU-001", "qty": 1},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataField(t, decodeResponse(t, w))

	orderData, ok := data["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "partially_received", orderData["status"])

	// Inventory picked up the received quantity
	record, err := f.inventoryRepo.FindBySKU(context.Background(), "SKU-001")
	require.NoError(t, err)
	assert.True(t, record.OnHand.Equal(decimal.NewFromInt(1)))
}

func TestGoodsReceiptHandler_Record_CompletesOrder(t *testing.T) {
	f := newReceiptHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": f.order.ID.String(),
		"lines": []map[string]any{
			{"sku": "SKU-001", "qty": 2},
			{"sku": "SKU-002", "qty": 3},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := dataField(t, decodeResponse(t, w))

	orderData := data["order"].(map[string]any)
	assert.Equal(t, "received", orderData["status"])
	assert.NotNil(t, orderData["received_at"])
}

func TestGoodsReceiptHandler_Record_UnknownOrder(t *testing.T) {
	f := newReceiptHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": uuid.NewString(),
		"lines": []map[string]any{
			{"sku": "SKU-001", "qty": 1},
		},
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestGoodsReceiptHandler_Record_QuantityExceeded(t *testing.T) {
	f := newReceiptHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": f.order.ID.String(),
		"lines": []map[string]any{
			{"sku": "SKU-001", "qty": 5},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	// Nothing was persisted
	receipts, err := f.receiptRepo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestGoodsReceiptHandler_Record_LineNotOnOrder(t *testing.T) {
	f := newReceiptHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": f.order.ID.String(),
		"lines": []map[string]any{
			{"sku": "SKU-999", "name": "Unknown", "qty": 1, "uom": "pcs"},
		},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestGoodsReceiptHandler_Record_AlreadyReceived(t *testing.T) {
	f := newReceiptHandlerFixture(t)

	first := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": f.order.ID.String(),
		"lines": []map[string]any{
			{"sku": "SKU-001", "qty": 2},
			{"sku": "SKU-002", "qty": 3},
		},
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": f.order.ID.String(),
		"lines": []map[string]any{
			{"sku": "SKU-001", "qty": 1},
		},
	})

	require.Equal(t, http.StatusUnprocessableEntity, second.Code)
	resp := decodeResponse(t, second)
	assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
}

func TestGoodsReceiptHandler_List_ByOrder(t *testing.T) {
	f := newReceiptHandlerFixture(t)

	created := f.do(t, http.MethodPost, "/api/v1/goods-receipts", map[string]any{
		"po_id": f.order.ID.String(),
		"lines": []map[string]any{
			{"sku": "SKU-001", "qty": 1},
		},
	})
	require.Equal(t, http.StatusCreated, created.Code)

	w := f.do(t, http.MethodGet, "/api/v1/goods-receipts?po_id="+f.order.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)

	w = f.do(t, http.MethodGet, "/api/v1/goods-receipts?po_id="+uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 0, resp.Meta.Total)
}
