package ledger

import (
	"errors"
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lunch() Fields {
	return Fields{
		Category:      "Food",
		Date:          "2024-01-05",
		Amount:        "12.50",
		Description:   "lunch",
		PaymentMethod: "Cash",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		wantErr error
		modify  func(f *Fields)
		name    string
	}{
		{
			name:   "valid expense",
			modify: func(_ *Fields) {},
		},
		{
			name:    "short date",
			modify:  func(f *Fields) { f.Date = "2024-1-5" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "negative amount",
			modify:  func(f *Fields) { f.Amount = "-3" },
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "non-numeric amount",
			modify:  func(f *Fields) { f.Amount = "twelve" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "nan amount",
			modify:  func(f *Fields) { f.Amount = "nan" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "infinite amount",
			modify:  func(f *Fields) { f.Amount = "-Infinity" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "empty category",
			modify:  func(f *Fields) { f.Category = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "empty description",
			modify:  func(f *Fields) { f.Description = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "empty payment method",
			modify:  func(f *Fields) { f.PaymentMethod = "" },
			wantErr: ErrMissingField,
		},
		{
			name: "missing field wins over bad date",
			modify: func(f *Fields) {
				f.Date = "yesterday"
				f.Amount = ""
			},
			wantErr: ErrMissingField,
		},
		{
			name:   "calendar-invalid date passes format check",
			modify: func(f *Fields) { f.Date = "2023-13-99" },
		},
		{
			name:    "date with trailing text",
			modify:  func(f *Fields) { f.Date = "2024-01-05x" },
			wantErr: ErrInvalidDate,
		},
		{
			name:    "amount beyond float range",
			modify:  func(f *Fields) { f.Amount = "1e400" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "amount with huge negative exponent",
			modify:  func(f *Fields) { f.Amount = "1e-2000000" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "more than ten decimal places",
			modify:  func(f *Fields) { f.Amount = "0.00000000001" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "sixteen integer digits",
			modify:  func(f *Fields) { f.Amount = "1234567890123456" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "fifteen integer digits",
			modify: func(f *Fields) { f.Amount = "999999999999999.99" },
		},
		{
			name:   "ten decimal places",
			modify: func(f *Fields) { f.Amount = "0.0000000001" },
		},
		{
			name:   "exponent within bounds",
			modify: func(f *Fields) { f.Amount = "1.5e3" },
		},
		{
			name:   "zero amount",
			modify: func(f *Fields) { f.Amount = "0" },
		},
		{
			name:   "negative zero is zero",
			modify: func(f *Fields) { f.Amount = "-0" },
		},
		{
			name:   "amount with surrounding spaces",
			modify: func(f *Fields) { f.Amount = " 7.25 " },
		},
		{
			name:   "unlisted category is accepted",
			modify: func(f *Fields) { f.Category = "Rent" },
		},
		{
			name:   "whitespace description counts as content",
			modify: func(f *Fields) { f.Description = " " },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := lunch()
			tt.modify(&f)

			e, err := Validate(f)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				assert.Equal(t, model.Expense{}, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.Category(f.Category), e.Category)
			assert.Equal(t, f.Date, e.Date)
			assert.Equal(t, f.Description, e.Description)
			assert.Equal(t, model.PaymentMethod(f.PaymentMethod), e.PaymentMethod)
			assert.False(t, e.Amount.IsNegative())
		})
	}
}

func TestValidate_ParsesAmount(t *testing.T) {
	e, err := Validate(lunch())
	require.NoError(t, err)
	assert.Equal(t, "12.5", e.Amount.String())
	assert.Zero(t, e.ID)
}

func TestValidate_NamesMissingFields(t *testing.T) {
	_, err := Validate(Fields{Category: "Food", Amount: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "date")
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "payment method")
	assert.NotContains(t, err.Error(), "category")
}

func TestParseAmount_RejectsBeforeRendering(t *testing.T) {
	for _, raw := range []string{"1e-2000000", "-1e-2000000", "1e2000000", "0e-2000000"} {
		t.Run(raw, func(t *testing.T) {
			amount, err := ParseAmount(raw)
			require.ErrorIs(t, err, ErrInvalidAmount)
			assert.True(t, amount.IsZero())
			assert.Less(t, len(err.Error()), 200)
		})
	}
}

func TestFieldsOf(t *testing.T) {
	e, err := Validate(lunch())
	require.NoError(t, err)

	again, err := Validate(FieldsOf(e))
	require.NoError(t, err)
	assert.True(t, e.Equal(again))
}
