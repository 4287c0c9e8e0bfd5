package catalog

import (
	"errors"
	"testing"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWork(t *testing.T) {
	t.Run("creates work in draft status", func(t *testing.T) {
		w, err := NewWork("Le Vieux Nègre et la Médaille", decimal.NewFromInt(5000))
		require.NoError(t, err)

		assert.NotEqual(t, "", w.ID.String())
		assert.Equal(t, WorkStatusDraft, w.Status)
		assert.Equal(t, RoyaltyTypePercentage, w.RoyaltyType)
		assert.Equal(t, "0.18", w.TVARate.String())
		assert.Equal(t, 0, w.Stock)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewWork("", decimal.NewFromInt(5000))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewWork("Titre", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestWork_IsSellable(t *testing.T) {
	w, err := NewWork("Titre", decimal.NewFromInt(5000))
	require.NoError(t, err)

	assert.False(t, w.IsSellable())

	w.Status = WorkStatusOnSale
	assert.True(t, w.IsSellable())

	w.Status = WorkStatusPublished
	assert.True(t, w.IsSellable())

	w.Status = WorkStatusArchived
	assert.False(t, w.IsSellable())
}

func TestWork_DecrementStock(t *testing.T) {
	t.Run("decrements both counters", func(t *testing.T) {
		w, err := NewWork("Titre", decimal.NewFromInt(5000))
		require.NoError(t, err)
		w.Stock = 10
		w.PhysicalStock = 12

		require.NoError(t, w.DecrementStock(4))
		assert.Equal(t, 6, w.Stock)
		assert.Equal(t, 8, w.PhysicalStock)
	})

	t.Run("fails on shortage with user-facing message", func(t *testing.T) {
		w, err := NewWork("Une Vie de Boy", decimal.NewFromInt(5000))
		require.NoError(t, err)
		w.Stock = 2

		err = w.DecrementStock(5)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, `Stock insuffisant pour "Une Vie de Boy". Disponible: 2, Demandé: 5`, domainErr.Message)
		assert.Equal(t, 2, w.Stock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		w, err := NewWork("Titre", decimal.NewFromInt(5000))
		require.NoError(t, err)
		w.Stock = 10

		assert.Error(t, w.DecrementStock(0))
		assert.Error(t, w.DecrementStock(-3))
		assert.Equal(t, 10, w.Stock)
	})
}

func TestWork_AdjustStock(t *testing.T) {
	w, err := NewWork("Titre", decimal.NewFromInt(5000))
	require.NoError(t, err)
	w.Stock = 5
	w.PhysicalStock = 5

	t.Run("applies signed delta", func(t *testing.T) {
		require.NoError(t, w.AdjustStock(-3))
		assert.Equal(t, 2, w.Stock)
		assert.Equal(t, 2, w.PhysicalStock)
	})

	t.Run("never drives logical stock below zero", func(t *testing.T) {
		err := w.AdjustStock(-10)
		require.Error(t, err)
		assert.Equal(t, 2, w.Stock)
	})
}

func TestWork_IsLowStock(t *testing.T) {
	w, err := NewWork("Titre", decimal.NewFromInt(5000))
	require.NoError(t, err)

	// No threshold configured
	w.Stock = 0
	assert.False(t, w.IsLowStock())

	w.MinStock = 5
	w.Stock = 5
	assert.True(t, w.IsLowStock())

	w.Stock = 6
	assert.False(t, w.IsLowStock())
}
