// Package engine ties the in-memory ledger to its store. Every mutation is
// persisted before it returns, and undone in memory when persisting fails.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/service"
	"github.com/shopspring/decimal"
)

// ErrPersist is returned when a change could not be written to the store.
// The in-memory ledger is left as it was before the change.
var ErrPersist = errors.New("failed to persist expenses")

// Engine owns the ledger for one command invocation or UI session.
type Engine struct {
	store  service.Store
	ledger *ledger.Ledger
	logger *slog.Logger
}

// Open loads the store into a new engine.
func Open(ctx context.Context, store service.Store) (*Engine, error) {
	e := &Engine{
		store:  store,
		logger: slog.Default().With("component", "engine"),
	}
	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload discards in-memory state and reads the store again.
func (e *Engine) Reload(ctx context.Context) error {
	records, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses from %s: %w", e.store.Path(), err)
	}
	e.ledger = ledger.New(records)
	e.logger.Debug("loaded expenses", "path", e.store.Path(), "count", len(records))
	return nil
}

// Add validates f, appends the expense and saves the ledger.
// Validation errors leave the ledger unchanged.
func (e *Engine) Add(ctx context.Context, f ledger.Fields) (model.Expense, error) {
	exp, err := ledger.Validate(f)
	if err != nil {
		return model.Expense{}, err
	}

	n := e.ledger.Len()
	added := e.ledger.Append(exp)
	if err := e.save(ctx); err != nil {
		e.ledger.Truncate(n)
		return model.Expense{}, err
	}

	e.logger.Info("added expense",
		"id", added.ID,
		"category", added.Category,
		"amount", added.Amount.String())
	return added, nil
}

// Remove deletes the expense with the given ID and saves the ledger.
func (e *Engine) Remove(ctx context.Context, id int64) (model.Expense, error) {
	idx := e.ledger.IndexOf(id)
	removed, err := e.ledger.RemoveByID(id)
	if err != nil {
		return model.Expense{}, err
	}
	if err := e.save(ctx); err != nil {
		e.ledger.Restore(idx, removed)
		return model.Expense{}, err
	}

	e.logger.Info("removed expense", "id", removed.ID)
	return removed, nil
}

// RemoveMatching deletes the first expense equal to target in all five
// fields and saves the ledger.
func (e *Engine) RemoveMatching(ctx context.Context, target model.Expense) (model.Expense, error) {
	removed, err := e.ledger.Remove(target)
	if err != nil {
		return model.Expense{}, err
	}
	if err := e.save(ctx); err != nil {
		e.ledger.Restore(e.restoreIndex(removed.ID), removed)
		return model.Expense{}, err
	}

	e.logger.Info("removed expense", "id", removed.ID)
	return removed, nil
}

// Import appends records in order and saves once. Records are not
// validated; they come from statement parsers that build them directly.
func (e *Engine) Import(ctx context.Context, records []model.Expense) ([]model.Expense, error) {
	if len(records) == 0 {
		return nil, nil
	}

	n := e.ledger.Len()
	added := make([]model.Expense, 0, len(records))
	for _, r := range records {
		added = append(added, e.ledger.Append(r))
	}
	if err := e.save(ctx); err != nil {
		e.ledger.Truncate(n)
		return nil, err
	}

	e.logger.Info("imported expenses", "count", len(added))
	return added, nil
}

// Records returns the current expenses in order.
func (e *Engine) Records() []model.Expense {
	return e.ledger.Records()
}

// Get returns the expense with the given ID.
func (e *Engine) Get(id int64) (model.Expense, bool) {
	return e.ledger.Get(id)
}

// Total returns the sum of all amounts.
func (e *Engine) Total() decimal.Decimal {
	return e.ledger.Total()
}

// Bars returns the per-category chart data.
func (e *Engine) Bars() []ledger.Bar {
	return e.ledger.Bars()
}

// StorePath returns where the ledger is persisted.
func (e *Engine) StorePath() string {
	return e.store.Path()
}

func (e *Engine) save(ctx context.Context) error {
	if err := e.store.Save(ctx, e.ledger.Records()); err != nil {
		e.logger.Error("failed to save expenses", "path", e.store.Path(), "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// restoreIndex finds where a record with the given ID belongs. IDs increase
// with position, so it goes before the first record with a larger ID.
func (e *Engine) restoreIndex(id int64) int {
	for i, r := range e.ledger.Records() {
		if r.ID > id {
			return i
		}
	}
	return e.ledger.Len()
}
