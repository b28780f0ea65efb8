package ledger

import (
	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Bar is one category column of the expense chart.
type Bar struct {
	Label  string
	Amount decimal.Decimal
	Count  int
}

// Sum returns the total amount of records.
func Sum(records []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range records {
		total = total.Add(e.Amount)
	}
	return total
}

// Summarize groups records by category. Known categories come first in
// their display order, followed by any other labels in first-seen order.
// Categories without records are omitted.
func Summarize(records []model.Expense) []Bar {
	sums := make(map[model.Category]*Bar)
	var extra []model.Category

	for _, e := range records {
		b, ok := sums[e.Category]
		if !ok {
			b = &Bar{Label: string(e.Category), Amount: decimal.Zero}
			sums[e.Category] = b
			if !e.Category.IsKnown() {
				extra = append(extra, e.Category)
			}
		}
		b.Amount = b.Amount.Add(e.Amount)
		b.Count++
	}

	bars := make([]Bar, 0, len(sums))
	for _, cat := range append(model.Categories(), extra...) {
		if b, ok := sums[cat]; ok {
			bars = append(bars, *b)
		}
	}
	return bars
}
