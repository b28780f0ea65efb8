// Package service defines the interfaces shared between the ledger engine,
// its storage backends and its exporters.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Store persists the full expense list. Implementations replace the stored
// list on every Save.
type Store interface {
	// Load returns the stored records in order. A store that has never been
	// written yields an empty list and no error.
	Load(ctx context.Context) ([]model.Expense, error)
	Save(ctx context.Context, records []model.Expense) error
	// Path identifies where the store lives, for messages and checkpoints.
	Path() string
	Close() error
}

// ReportWriter publishes the ledger somewhere outside the store.
type ReportWriter interface {
	Write(ctx context.Context, records []model.Expense, summary *ReportSummary) error
}

// ReportSummary contains aggregate information for an export.
type ReportSummary struct {
	GeneratedAt time.Time
	DateRange   DateRange
	TotalAmount decimal.Decimal
	ByCategory  []CategorySummary
	Records     int
}

// DateRange is the span of expense dates, as stored (YYYY-MM-DD).
type DateRange struct {
	Start string
	End   string
}

// CategorySummary contains aggregated statistics for a category.
type CategorySummary struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryOptions are used for network exports.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
	}
}
