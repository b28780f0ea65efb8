// Package testutil provides shared fixtures for tests across the module.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/storage"
	"github.com/shopspring/decimal"
)

// MemoryStore is an in-memory service.Store with injectable failures.
type MemoryStore struct {
	LoadErr error
	SaveErr error
	Records []model.Expense
	Saves   int
}

// NewMemoryStore creates a store holding records.
func NewMemoryStore(records ...model.Expense) *MemoryStore {
	return &MemoryStore{Records: append([]model.Expense(nil), records...)}
}

// Load returns a copy of the stored records.
func (m *MemoryStore) Load(_ context.Context) ([]model.Expense, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]model.Expense{}, m.Records...), nil
}

// Save replaces the stored records unless SaveErr is set.
func (m *MemoryStore) Save(_ context.Context, records []model.Expense) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Records = append([]model.Expense(nil), records...)
	m.Saves++
	return nil
}

// Path returns a fixed pseudo path.
func (m *MemoryStore) Path() string {
	return "memory://expenses"
}

// Close does nothing.
func (m *MemoryStore) Close() error {
	return nil
}

// Expense builds a valid expense dated 2024-03-01 and paid in cash.
func Expense(cat model.Category, amount, description string) model.Expense {
	return model.Expense{
		Category:      cat,
		Date:          "2024-03-01",
		Amount:        decimal.RequireFromString(amount),
		Description:   description,
		PaymentMethod: model.PaymentCash,
	}
}

// SetupFileStore creates a file store at path seeded with records.
func SetupFileStore(t *testing.T, path string, records ...model.Expense) *storage.FileStore {
	t.Helper()

	store, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	if len(records) > 0 {
		if err := store.Save(context.Background(), records); err != nil {
			t.Fatalf("failed to seed file store: %v", err)
		}
	}
	return store
}
