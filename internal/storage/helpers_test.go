package storage

import (
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExpenses() []model.Expense {
	return []model.Expense{
		{
			Category:      model.CategoryFood,
			Date:          "2024-01-05",
			Amount:        decimal.RequireFromString("12.50"),
			Description:   "lunch",
			PaymentMethod: model.PaymentCash,
		},
		{
			Category:      model.CategoryTravel,
			Date:          "2024-01-06",
			Amount:        decimal.RequireFromString("40"),
			Description:   "train | return",
			PaymentMethod: model.PaymentCreditCard,
		},
		{
			Category:      model.CategoryFood,
			Date:          "2024-01-05",
			Amount:        decimal.RequireFromString("12.50"),
			Description:   "lunch",
			PaymentMethod: model.PaymentCash,
		},
	}
}

func requireSameRecords(t *testing.T, want, got []model.Expense) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "record %d: want %+v, got %+v", i, want[i], got[i])
	}
}
