package ledger

import (
	"fmt"

	"github.com/Veraticus/spent/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger is the ordered collection of expenses for one session.
// Insertion order is preserved and duplicates are allowed.
type Ledger struct {
	records []model.Expense
	nextID  int64
}

// New creates a ledger holding records in order, assigning fresh IDs.
func New(records []model.Expense) *Ledger {
	l := &Ledger{
		records: make([]model.Expense, 0, len(records)),
		nextID:  1,
	}
	for _, e := range records {
		l.Append(e)
	}
	return l
}

// Append adds e to the end of the ledger and returns the stored copy
// carrying its assigned ID.
func (l *Ledger) Append(e model.Expense) model.Expense {
	e.ID = l.nextID
	l.nextID++
	l.records = append(l.records, e)
	return e
}

// Remove deletes the first record equal to e in all five fields.
func (l *Ledger) Remove(e model.Expense) (model.Expense, error) {
	for i, rec := range l.records {
		if rec.Equal(e) {
			return l.removeAt(i), nil
		}
	}
	return model.Expense{}, fmt.Errorf("%w: %s %s %s", ErrNotFound, e.Category, e.Date, e.Amount.String())
}

// RemoveByID deletes the record with the given ID.
func (l *Ledger) RemoveByID(id int64) (model.Expense, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return l.removeAt(i), nil
}

// Restore puts a previously removed record back at position index,
// keeping its ID. Used to undo a removal that could not be persisted.
func (l *Ledger) Restore(index int, e model.Expense) {
	if index < 0 || index > len(l.records) {
		index = len(l.records)
	}
	l.records = append(l.records, model.Expense{})
	copy(l.records[index+1:], l.records[index:])
	l.records[index] = e
}

// Truncate drops every record after the first n. Used to undo appends.
func (l *Ledger) Truncate(n int) {
	if n < 0 || n >= len(l.records) {
		return
	}
	l.records = l.records[:n]
}

// Get returns the record with the given ID.
func (l *Ledger) Get(id int64) (model.Expense, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Expense{}, false
	}
	return l.records[i], true
}

// IndexOf returns the position of the record with the given ID, or -1.
func (l *Ledger) IndexOf(id int64) int {
	return l.indexOf(id)
}

// Records returns a copy of the current records in order.
func (l *Ledger) Records() []model.Expense {
	out := make([]model.Expense, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Total returns the sum of all amounts. An empty ledger totals zero.
func (l *Ledger) Total() decimal.Decimal {
	return Sum(l.records)
}

// Bars returns the chart snapshot of the ledger.
func (l *Ledger) Bars() []Bar {
	return Summarize(l.records)
}

func (l *Ledger) indexOf(id int64) int {
	for i, rec := range l.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeAt(i int) model.Expense {
	removed := l.records[i]
	l.records = append(l.records[:i], l.records[i+1:]...)
	return removed
}
