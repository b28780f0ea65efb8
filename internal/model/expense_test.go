package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsKnown(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsKnown(), c)
	}
	for _, p := range PaymentMethods() {
		assert.True(t, p.IsKnown(), p)
	}

	assert.False(t, Category("food").IsKnown())
	assert.False(t, Category("").IsKnown())
	assert.False(t, PaymentMethod("credit card").IsKnown())
	assert.False(t, PaymentMethod("UPI").IsKnown())
}

func TestExpenseEqual(t *testing.T) {
	a := Expense{
		Category:      CategoryFood,
		Date:          "2024-01-05",
		Amount:        decimal.RequireFromString("12.50"),
		Description:   "lunch",
		PaymentMethod: PaymentCash,
		ID:            1,
	}
	b := a
	b.Amount = decimal.RequireFromString("12.5")
	b.ID = 7
	assert.True(t, a.Equal(b))

	b.Description = "dinner"
	assert.False(t, a.Equal(b))
}
