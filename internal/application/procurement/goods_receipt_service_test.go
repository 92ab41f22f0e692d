package procurement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

func createTestServiceOrder(t *testing.T) *procurement.PurchaseOrder {
	request := createTestServiceRequest(t)
	require.NoError(t, request.Approve(request.ApproverID))
	order, err := procurement.NewPurchaseOrderFromRequest(request, uuid.New(), "Acme Supplies")
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func newReceiptService(orderRepo *MockPurchaseOrderRepository, receiptRepo *MockGoodsReceiptRepository, inventoryRepo *MockInventoryRepository) *GoodsReceiptService {
	scope := NewNoOpTransactionScope(receiptRepo, orderRepo, inventoryRepo)
	return NewGoodsReceiptService(receiptRepo, orderRepo, scope)
}

func TestGoodsReceiptService_Record_FullReceipt(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newReceiptService(orderRepo, receiptRepo, inventoryRepo)

	order := createTestServiceOrder(t)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*procurement.GoodsReceipt")).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
	inventoryRepo.On("AddOnHand", mock.Anything, "SKU-001", mock.Anything).Return(shared.ErrNotFound)
	inventoryRepo.On("AddOnHand", mock.Anything, "SKU-002", mock.Anything).Return(shared.ErrNotFound)
	inventoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.InventoryRecord")).Return(nil)

	response, err := service.Record(context.Background(), RecordGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Quantity: decimal.NewFromInt(2)},
			{SKU: "SKU-002", Quantity: decimal.NewFromInt(3)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "received", response.Order.Status)
	assert.Len(t, response.Receipt.Lines, 2)
	// Receipt lines inherit name and unit from the order snapshot
	assert.Equal(t, "Laptop", response.Receipt.Lines[0].Name)
	assert.Equal(t, "pcs", response.Receipt.Lines[0].UoM)
	inventoryRepo.AssertNumberOfCalls(t, "Create", 2)
	receiptRepo.AssertExpectations(t)
}

func TestGoodsReceiptService_Record_PartialReceipt(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newReceiptService(orderRepo, receiptRepo, inventoryRepo)

	order := createTestServiceOrder(t)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*procurement.GoodsReceipt")).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
	inventoryRepo.On("AddOnHand", mock.Anything, "SKU-001", mock.Anything).Return(nil)

	response, err := service.Record(context.Background(), RecordGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Quantity: decimal.NewFromInt(1)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "partially_received", response.Order.Status)
	// Existing record incremented in place, never replaced
	inventoryRepo.AssertNumberOfCalls(t, "AddOnHand", 1)
	inventoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGoodsReceiptService_Record_FirstReceiptRace(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newReceiptService(orderRepo, receiptRepo, inventoryRepo)

	order := createTestServiceOrder(t)

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	receiptRepo.On("Create", mock.Anything, mock.AnythingOfType("*procurement.GoodsReceipt")).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)
	// Record does not exist yet, but a concurrent receipt creates it
	// between the failed increment and our insert
	inventoryRepo.On("AddOnHand", mock.Anything, "SKU-001", mock.Anything).Return(shared.ErrNotFound).Once()
	inventoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.InventoryRecord")).Return(shared.ErrAlreadyExists)
	inventoryRepo.On("AddOnHand", mock.Anything, "SKU-001", mock.Anything).Return(nil).Once()

	_, err := service.Record(context.Background(), RecordGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Quantity: decimal.NewFromInt(1)},
		},
	})

	require.NoError(t, err)
	inventoryRepo.AssertNumberOfCalls(t, "AddOnHand", 2)
}

func TestGoodsReceiptService_Record_OverReceipt(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newReceiptService(orderRepo, receiptRepo, inventoryRepo)

	order := createTestServiceOrder(t)
	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := service.Record(context.Background(), RecordGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Quantity: decimal.NewFromInt(99)},
		},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
	// No writes happen when validation fails
	receiptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	inventoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGoodsReceiptService_Record_UnknownSKU(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newReceiptService(orderRepo, receiptRepo, inventoryRepo)

	order := createTestServiceOrder(t)
	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := service.Record(context.Background(), RecordGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-404", Name: "Mystery", Quantity: decimal.NewFromInt(1), UoM: "pcs"},
		},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "LINE_NOT_ON_ORDER", domainErr.Code)
}

func TestGoodsReceiptService_Record_OrderNotFound(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newReceiptService(orderRepo, receiptRepo, inventoryRepo)

	orderID := uuid.New()
	orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

	_, err := service.Record(context.Background(), RecordGoodsReceiptRequest{
		OrderID: orderID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Quantity: decimal.NewFromInt(1)},
		},
	})

	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGoodsReceiptService_Record_AlreadyReceived(t *testing.T) {
	orderRepo := new(MockPurchaseOrderRepository)
	receiptRepo := new(MockGoodsReceiptRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newReceiptService(orderRepo, receiptRepo, inventoryRepo)

	order := createTestServiceOrder(t)
	require.NoError(t, order.ApplyReceipt([]procurement.ReceiptLineInput{
		{SKU: "SKU-001", Quantity: decimal.NewFromInt(2)},
		{SKU: "SKU-002", Quantity: decimal.NewFromInt(3)},
	}))
	order.ClearDomainEvents()

	orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := service.Record(context.Background(), RecordGoodsReceiptRequest{
		OrderID: order.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Quantity: decimal.NewFromInt(1)},
		},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
