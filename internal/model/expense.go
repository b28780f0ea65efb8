package model

import (
	"github.com/shopspring/decimal"
)

// Category labels an expense. The fixed set below is what the entry
// surfaces offer; stored records may carry any non-empty label.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategoryShopping      Category = "Shopping"
	CategoryRecharge      Category = "Recharge"
	CategoryEntertainment Category = "Entertainment"
	CategoryOther         Category = "Other"
)

// PaymentMethod records how an expense was paid.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentOnline     PaymentMethod = "Online"
	PaymentOther      PaymentMethod = "Other"
)

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTravel,
		CategoryShopping,
		CategoryRecharge,
		CategoryEntertainment,
		CategoryOther,
	}
}

// PaymentMethods returns the selectable payment methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentCash,
		PaymentCreditCard,
		PaymentDebitCard,
		PaymentOnline,
		PaymentOther,
	}
}

// IsKnown reports whether c is one of the selectable categories.
func (c Category) IsKnown() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// IsKnown reports whether p is one of the selectable payment methods.
func (p PaymentMethod) IsKnown() bool {
	for _, known := range PaymentMethods() {
		if p == known {
			return true
		}
	}
	return false
}

// Expense is a single recorded expense.
type Expense struct {
	Amount        decimal.Decimal
	Category      Category
	Date          string // YYYY-MM-DD, format-checked only
	Description   string
	PaymentMethod PaymentMethod
	ID            int64 // assigned by the ledger; not persisted
}

// Equal reports whether two expenses match in all five recorded fields.
// The ID is ignored and amounts compare numerically.
func (e Expense) Equal(other Expense) bool {
	return e.Category == other.Category &&
		e.Date == other.Date &&
		e.Amount.Equal(other.Amount) &&
		e.Description == other.Description &&
		e.PaymentMethod == other.PaymentMethod
}
