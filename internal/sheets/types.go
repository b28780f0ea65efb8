package sheets

import (
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/service"
	"github.com/shopspring/decimal"
)

// ExpenseRow is one row of the expense details section.
type ExpenseRow struct {
	Amount        decimal.Decimal
	Date          string
	Category      string
	Description   string
	PaymentMethod string
}

// CategoryRow is one row of the category breakdown section.
type CategoryRow struct {
	Amount   decimal.Decimal
	Category string
	Count    int
}

func newExpenseRow(e model.Expense) ExpenseRow {
	return ExpenseRow{
		Date:          e.Date,
		Category:      string(e.Category),
		Amount:        e.Amount,
		Description:   e.Description,
		PaymentMethod: string(e.PaymentMethod),
	}
}

func newCategoryRow(c service.CategorySummary) CategoryRow {
	return CategoryRow{
		Category: c.Category,
		Count:    c.Count,
		Amount:   c.Amount,
	}
}

// Column holding amounts in both sections.
const amountColumn = 2

func (r ExpenseRow) values() []any {
	return []any{r.Date, r.Category, r.Amount.InexactFloat64(), r.Description, r.PaymentMethod}
}

func (r CategoryRow) values() []any {
	return []any{r.Category, r.Count, r.Amount.InexactFloat64()}
}
