// Package ledger holds the ordered expense collection and its text format.
package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validation and lookup errors.
var (
	ErrMissingField   = errors.New("missing field")
	ErrInvalidDate    = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidAmount  = errors.New("amount is not a number")
	ErrNegativeAmount = errors.New("amount must be non-negative")
	ErrNotFound       = errors.New("expense not found")
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Fields are the raw, unvalidated values collected by an entry surface.
type Fields struct {
	Category      string `name:"category" validate:"required"`
	Date          string `name:"date" validate:"required"`
	Amount        string `name:"amount" validate:"required"`
	Description   string `name:"description" validate:"required"`
	PaymentMethod string `name:"payment method" validate:"required"`
}

// FieldsOf returns the raw field values of an existing expense.
func FieldsOf(e model.Expense) Fields {
	return Fields{
		Category:      string(e.Category),
		Date:          e.Date,
		Amount:        e.Amount.String(),
		Description:   e.Description,
		PaymentMethod: string(e.PaymentMethod),
	}
}

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("name")
	})
	return v
}

// Validate checks the raw fields and builds an expense from them.
// Only emptiness is checked for text fields; whitespace counts as content.
func Validate(f Fields) (model.Expense, error) {
	if err := fieldValidator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.Expense{}, fmt.Errorf("failed to validate fields: %w", err)
		}
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			names = append(names, fe.Field())
		}
		return model.Expense{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(names, ", "))
	}

	if !datePattern.MatchString(f.Date) {
		return model.Expense{}, fmt.Errorf("%w: %q", ErrInvalidDate, f.Date)
	}

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return model.Expense{}, err
	}
	if amount.IsNegative() {
		return model.Expense{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount.String())
	}

	return model.Expense{
		Category:      model.Category(f.Category),
		Date:          f.Date,
		Amount:        amount,
		Description:   f.Description,
		PaymentMethod: model.PaymentMethod(f.PaymentMethod),
	}, nil
}

// Amounts are limited to maxAmountScale decimal places and
// maxAmountDigits digits before the decimal point.
const (
	maxAmountScale  = 10
	maxAmountDigits = 15
)

// ParseAmount parses a decimal amount, ignoring surrounding whitespace.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(lower, "nan") || strings.HasPrefix(lower, "inf") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}

	// Checked before any arithmetic: 1e-2000000 parses but renders as a
	// two-million digit literal.
	if amount.Exponent() < -maxAmountScale {
		return decimal.Zero, fmt.Errorf("%w: more than %d decimal places in %q", ErrInvalidAmount, maxAmountScale, raw)
	}
	if !amount.IsZero() && int64(amount.NumDigits())+int64(amount.Exponent()) > maxAmountDigits {
		return decimal.Zero, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, raw)
	}

	return amount, nil
}
