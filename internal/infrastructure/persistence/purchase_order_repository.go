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

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// Create creates a new purchase order with its lines.
// The unique index on request_id makes a second order for the same
// request fail even when two creates race past the existence check.
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, order *procurement.PurchaseOrder) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock saves with optimistic locking. The aggregate increments its
// version before saving, so the row must still hold the previous version.
// Line received quantities are rewritten in the same transaction.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expectedVersion := order.Version - 1
		order.UpdatedAt = time.Now()

		result := tx.Model(&procurement.PurchaseOrder{}).
			Where("id = ? AND version = ?", order.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":      order.Status,
				"received_at": order.ReceivedAt,
				"version":     order.Version,
				"updated_at":  order.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&procurement.PurchaseOrder{}).
				Where("id = ?", order.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.ErrNotFound
			}
			return shared.ErrConcurrencyConflict
		}

		for i := range order.Lines {
			line := &order.Lines[i]
			line.OrderID = order.ID
			line.UpdatedAt = order.UpdatedAt
			if err := tx.Model(&procurement.PurchaseOrderLine{}).
				Where("id = ?", line.ID).
				Updates(map[string]interface{}{
					"received_quantity": line.ReceivedQuantity,
					"updated_at":        line.UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByID finds an order by ID including its lines
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByRequestID finds the order issued for a request, if any
func (r *GormPurchaseOrderRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("request_id = ?", requestID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ExistsByRequestID checks whether a request already has an order
func (r *GormPurchaseOrderRepository) ExistsByRequestID(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("request_id = ?", requestID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll returns all orders, oldest first
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context) ([]*procurement.PurchaseOrder, error) {
	var orders []*procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
