package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseRequestRepository implements PurchaseRequestRepository using GORM
type GormPurchaseRequestRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRequestRepository creates a new GormPurchaseRequestRepository
func NewGormPurchaseRequestRepository(db *gorm.DB) *GormPurchaseRequestRepository {
	return &GormPurchaseRequestRepository{db: db}
}

// Create creates a new purchase request with its lines
func (r *GormPurchaseRequestRepository) Create(ctx context.Context, request *procurement.PurchaseRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking. The aggregate increments its
// version before saving, so the row must still hold the previous version.
func (r *GormPurchaseRequestRepository) SaveWithLock(ctx context.Context, request *procurement.PurchaseRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expectedVersion := request.Version - 1
		request.UpdatedAt = time.Now()

		result := tx.Model(&procurement.PurchaseRequest{}).
			Where("id = ? AND version = ?", request.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":     request.Status,
				"decided_at": request.DecidedAt,
				"version":    request.Version,
				"updated_at": request.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&procurement.PurchaseRequest{}).
				Where("id = ?", request.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}

		return nil
	})
}

// FindByID finds a request by ID including its lines
func (r *GormPurchaseRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseRequest, error) {
	var request procurement.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByRequester returns all requests raised by a user, oldest first
func (r *GormPurchaseRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*procurement.PurchaseRequest, error) {
	var requests []*procurement.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("requester_id = ?", requesterID).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindPendingForApprover returns submitted requests awaiting a manager, oldest first
func (r *GormPurchaseRequestRepository) FindPendingForApprover(ctx context.Context, approverID uuid.UUID) ([]*procurement.PurchaseRequest, error) {
	var requests []*procurement.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("approver_id = ? AND status = ?", approverID, procurement.PurchaseRequestStatusSubmitted).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByStatus returns all requests in the given status, oldest first
func (r *GormPurchaseRequestRepository) FindByStatus(ctx context.Context, status procurement.PurchaseRequestStatus) ([]*procurement.PurchaseRequest, error) {
	var requests []*procurement.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindAll returns all requests, oldest first
func (r *GormPurchaseRequestRepository) FindAll(ctx context.Context) ([]*procurement.PurchaseRequest, error) {
	var requests []*procurement.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Ensure GormPurchaseRequestRepository implements PurchaseRequestRepository
var _ procurement.PurchaseRequestRepository = (*GormPurchaseRequestRepository)(nil)
