package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/service"
)

// MockWriter is a service.ReportWriter that records its calls.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, records []model.Expense, summary *service.ReportSummary) error
	LastSummary    *service.ReportSummary
	LastRecords    []model.Expense
	WriteCallCount int
	mu             sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write records the call and returns the result of WriteFunc, if set.
func (m *MockWriter) Write(ctx context.Context, records []model.Expense, summary *service.ReportSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastRecords = records
	m.LastSummary = summary

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, records, summary)
	}
	return nil
}

// SetWriteError configures the mock to fail every Write with err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ []model.Expense, _ *service.ReportSummary) error {
		return err
	}
}

// Calls returns how many times Write was called.
func (m *MockWriter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WriteCallCount
}
