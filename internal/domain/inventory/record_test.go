package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/domain/shared"
)

func TestNewInventoryRecord(t *testing.T) {
	record, err := NewInventoryRecord("SKU-001", "Laptop", "pcs")

	require.NoError(t, err)
	assert.Equal(t, "SKU-001", record.SKU)
	assert.Equal(t, "Laptop", record.Name)
	assert.Equal(t, "pcs", record.UoM)
	assert.True(t, record.OnHand.IsZero())
}

func TestNewInventoryRecord_Validation(t *testing.T) {
	_, err := NewInventoryRecord("", "Laptop", "pcs")
	require.Error(t, err)

	_, err = NewInventoryRecord("SKU-001", "Laptop", " ")
	require.Error(t, err)
}

func TestInventoryRecord_AddQuantity(t *testing.T) {
	record, err := NewInventoryRecord("SKU-001", "Laptop", "pcs")
	require.NoError(t, err)

	require.NoError(t, record.AddQuantity(decimal.NewFromInt(3)))
	require.NoError(t, record.AddQuantity(decimal.NewFromFloat(1.5)))

	assert.True(t, record.OnHand.Equal(decimal.NewFromFloat(4.5)))
	assert.Equal(t, 3, record.GetVersion())
}

func TestInventoryRecord_AddQuantity_RejectsNonPositive(t *testing.T) {
	record, err := NewInventoryRecord("SKU-001", "Laptop", "pcs")
	require.NoError(t, err)

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-2)} {
		err := record.AddQuantity(qty)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	}
	assert.True(t, record.OnHand.IsZero())
}
