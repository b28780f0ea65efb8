package engine

import (
	"time"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/service"
)

// Summary builds the aggregate used by exporters, stamped with now.
func (e *Engine) Summary(now time.Time) *service.ReportSummary {
	return Summarize(e.ledger.Records(), now)
}

// Summarize aggregates records into a report summary. Dates are compared
// as strings, which orders well-formed YYYY-MM-DD values correctly.
func Summarize(records []model.Expense, now time.Time) *service.ReportSummary {
	summary := &service.ReportSummary{
		GeneratedAt: now,
		TotalAmount: ledger.Sum(records),
		Records:     len(records),
	}

	for i, r := range records {
		if i == 0 || r.Date < summary.DateRange.Start {
			summary.DateRange.Start = r.Date
		}
		if r.Date > summary.DateRange.End {
			summary.DateRange.End = r.Date
		}
	}

	for _, bar := range ledger.Summarize(records) {
		summary.ByCategory = append(summary.ByCategory, service.CategorySummary{
			Category: bar.Label,
			Amount:   bar.Amount,
			Count:    bar.Count,
		})
	}

	return summary
}
