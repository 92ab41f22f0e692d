package procurement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

func testEmployee(t *testing.T, managerID uuid.UUID) *directory.User {
	user, err := directory.NewUser("Dana", "dana@example.com", directory.RoleEmployee, &managerID)
	require.NoError(t, err)
	return user
}

func testManager(t *testing.T) *directory.User {
	user, err := directory.NewUser("Morgan", "morgan@example.com", directory.RoleManager, nil)
	require.NoError(t, err)
	return user
}

func TestPurchaseRequestService_Create(t *testing.T) {
	requestRepo := new(MockPurchaseRequestRepository)
	userRepo := new(MockUserRepository)
	service := NewPurchaseRequestService(requestRepo, userRepo)

	manager := testManager(t)
	employee := testEmployee(t, manager.ID)

	userRepo.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
	userRepo.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)
	requestRepo.On("Create", mock.Anything, mock.AnythingOfType("*procurement.PurchaseRequest")).Return(nil)

	response, err := service.Create(context.Background(), CreatePurchaseRequestRequest{
		RequesterID: employee.ID,
		ApproverID:  manager.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Name: "Laptop", Quantity: decimal.NewFromInt(2), UoM: "pcs"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "submitted", response.Status)
	assert.Equal(t, employee.ID, response.RequesterID)
	assert.Len(t, response.Lines, 1)
	requestRepo.AssertExpectations(t)
}

func TestPurchaseRequestService_Create_RequesterNotEmployee(t *testing.T) {
	requestRepo := new(MockPurchaseRequestRepository)
	userRepo := new(MockUserRepository)
	service := NewPurchaseRequestService(requestRepo, userRepo)

	manager := testManager(t)
	userRepo.On("FindByID", mock.Anything, manager.ID).Return(manager, nil)

	_, err := service.Create(context.Background(), CreatePurchaseRequestRequest{
		RequesterID: manager.ID,
		ApproverID:  manager.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Name: "Laptop", Quantity: decimal.NewFromInt(1), UoM: "pcs"},
		},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchaseRequestService_Create_ApproverNotManager(t *testing.T) {
	requestRepo := new(MockPurchaseRequestRepository)
	userRepo := new(MockUserRepository)
	service := NewPurchaseRequestService(requestRepo, userRepo)

	manager := testManager(t)
	employee := testEmployee(t, manager.ID)
	other := testEmployee(t, manager.ID)

	userRepo.On("FindByID", mock.Anything, employee.ID).Return(employee, nil)
	userRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

	_, err := service.Create(context.Background(), CreatePurchaseRequestRequest{
		RequesterID: employee.ID,
		ApproverID:  other.ID,
		Lines: []RequestLineRequest{
			{SKU: "SKU-001", Name: "Laptop", Quantity: decimal.NewFromInt(1), UoM: "pcs"},
		},
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestPurchaseRequestService_Decide_Approve(t *testing.T) {
	requestRepo := new(MockPurchaseRequestRepository)
	userRepo := new(MockUserRepository)
	service := NewPurchaseRequestService(requestRepo, userRepo)

	request := createTestServiceRequest(t)

	requestRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)
	requestRepo.On("SaveWithLock", mock.Anything, request).Return(nil)

	response, err := service.Decide(context.Background(), request.ID, DecidePurchaseRequestRequest{
		ActorID: request.ApproverID,
		Approve: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "approved", response.Status)
	assert.NotNil(t, response.DecidedAt)
	requestRepo.AssertExpectations(t)
}

func TestPurchaseRequestService_Decide_WrongActor(t *testing.T) {
	requestRepo := new(MockPurchaseRequestRepository)
	userRepo := new(MockUserRepository)
	service := NewPurchaseRequestService(requestRepo, userRepo)

	request := createTestServiceRequest(t)
	requestRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil)

	_, err := service.Decide(context.Background(), request.ID, DecidePurchaseRequestRequest{
		ActorID: uuid.New(),
		Approve: true,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	requestRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestPurchaseRequestService_Decide_NotFound(t *testing.T) {
	requestRepo := new(MockPurchaseRequestRepository)
	userRepo := new(MockUserRepository)
	service := NewPurchaseRequestService(requestRepo, userRepo)

	requestID := uuid.New()
	requestRepo.On("FindByID", mock.Anything, requestID).Return(nil, shared.ErrNotFound)

	_, err := service.Decide(context.Background(), requestID, DecidePurchaseRequestRequest{
		ActorID: uuid.New(),
		Approve: true,
	})

	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPurchaseRequestService_Decide_ConcurrentLoser(t *testing.T) {
	requestRepo := new(MockPurchaseRequestRepository)
	userRepo := new(MockUserRepository)
	service := NewPurchaseRequestService(requestRepo, userRepo)

	// The loaded copy is still pending; the save loses the version race and
	// the re-read shows the winner's decision.
	request := createTestServiceRequest(t)
	decided := createTestServiceRequest(t)
	decided.ID = request.ID
	require.NoError(t, decided.Approve(decided.ApproverID))
	decided.ApproverID = request.ApproverID

	requestRepo.On("FindByID", mock.Anything, request.ID).Return(request, nil).Once()
	requestRepo.On("SaveWithLock", mock.Anything, request).Return(shared.ErrConcurrencyConflict)
	requestRepo.On("FindByID", mock.Anything, request.ID).Return(decided, nil).Once()

	_, err := service.Decide(context.Background(), request.ID, DecidePurchaseRequestRequest{
		ActorID: request.ApproverID,
		Approve: false,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func createTestServiceRequest(t *testing.T) *procurement.PurchaseRequest {
	request, err := procurement.NewPurchaseRequest(uuid.New(), uuid.New(), []procurement.RequestLineInput{
		{SKU: "SKU-001", Name: "Laptop", Quantity: decimal.NewFromInt(2), UoM: "pcs"},
		{SKU: "SKU-002", Name: "Monitor", Quantity: decimal.NewFromInt(3), UoM: "pcs"},
	})
	require.NoError(t, err)
	request.ClearDomainEvents()
	return request
}
