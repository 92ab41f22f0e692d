package persistence

import (
	"testing"

	"github.com/procure/backend/internal/domain/catalog"
	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/inventory"
	"github.com/procure/backend/internal/domain/notification"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&directory.User{},
		&catalog.Item{},
		&catalog.Supplier{},
		&procurement.PurchaseRequest{},
		&procurement.PurchaseRequestLine{},
		&procurement.PurchaseOrder{},
		&procurement.PurchaseOrderLine{},
		&procurement.GoodsReceipt{},
		&procurement.GoodsReceiptLine{},
		&inventory.InventoryRecord{},
		&notification.Notification{},
	))

	return db
}
