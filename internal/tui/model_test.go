package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/spent/internal/engine"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/testutil"
	"github.com/Veraticus/spent/internal/tui/components"
	"github.com/Veraticus/spent/internal/tui/tuitest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
}

func newTestUI(t *testing.T, records ...model.Expense) (*tuitest.Driver, *engine.Engine, *testutil.MemoryStore) {
	t.Helper()
	store := testutil.NewMemoryStore(records...)
	eng, err := engine.Open(context.Background(), store)
	require.NoError(t, err)

	m := New(context.Background(), eng, WithClock(fixedClock), WithSize(100, 30), WithAltScreen(false))
	return tuitest.NewDriver(m), eng, store
}

func activeView(d *tuitest.Driver) View {
	return d.Model.(Model).ActiveView()
}

func TestTabCyclesViews(t *testing.T) {
	d, _, _ := newTestUI(t)
	assert.Equal(t, ViewForm, activeView(d))

	d.Press("tab")
	assert.Equal(t, ViewList, activeView(d))
	d.Press("tab")
	assert.Equal(t, ViewChart, activeView(d))
	d.Press("tab")
	assert.Equal(t, ViewForm, activeView(d))
}

func TestAddExpenseThroughForm(t *testing.T) {
	d, eng, store := newTestUI(t)

	d.Press("down", "down").Type("12.50").Press("down").Type("lunch").Press("ctrl+s")

	require.Len(t, eng.Records(), 1)
	got := eng.Records()[0]
	assert.Equal(t, model.CategoryFood, got.Category)
	assert.Equal(t, "2024-03-09", got.Date)
	assert.Equal(t, "12.5", got.Amount.String())
	assert.Equal(t, "lunch", got.Description)
	assert.Equal(t, 1, store.Saves)

	view := d.View()
	assert.Contains(t, view, "Added #1")

	d.Press("tab")
	assert.Contains(t, d.View(), "Total: 12.50 (1 expenses)")
}

func TestInvalidInputLeavesLedgerUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		desc   string
		errMsg string
	}{
		{"negative amount", "-3", "lunch", "non-negative"},
		{"not a number", "abc", "lunch", "not a number"},
		{"missing description", "5", "", "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, eng, store := newTestUI(t)

			d.Press("down", "down").Type(tt.amount).Press("down").Type(tt.desc).Press("ctrl+s")

			assert.Empty(t, eng.Records())
			assert.Zero(t, store.Saves)
			assert.Contains(t, d.View(), tt.errMsg)
		})
	}
}

func TestSaveFailureShownOnForm(t *testing.T) {
	d, eng, store := newTestUI(t)
	store.SaveErr = errors.New("disk full")

	d.Press("down", "down").Type("5").Press("down").Type("snack").Press("ctrl+s")

	assert.Empty(t, eng.Records())
	assert.Contains(t, d.View(), "disk full")
}

func TestDeleteFromList(t *testing.T) {
	d, eng, store := newTestUI(t,
		testutil.Expense(model.CategoryFood, "10", "first"),
		testutil.Expense(model.CategoryTravel, "20", "second"),
	)

	d.Press("tab", "down", "d")

	require.Len(t, eng.Records(), 1)
	assert.Equal(t, "first", eng.Records()[0].Description)
	assert.Equal(t, 1, store.Saves)
	assert.Contains(t, d.View(), "Removed #2: second")
	assert.Contains(t, d.View(), "Total: 10.00 (1 expenses)")
}

// updateOnlyLedger counts mutations made outside of Update.
type updateOnlyLedger struct {
	*engine.Engine
	inUpdate bool
	outside  int
}

func (l *updateOnlyLedger) Add(ctx context.Context, f ledger.Fields) (model.Expense, error) {
	if !l.inUpdate {
		l.outside++
	}
	return l.Engine.Add(ctx, f)
}

func (l *updateOnlyLedger) Remove(ctx context.Context, id int64) (model.Expense, error) {
	if !l.inUpdate {
		l.outside++
	}
	return l.Engine.Remove(ctx, id)
}

func TestMutationsRunInsideUpdate(t *testing.T) {
	store := testutil.NewMemoryStore()
	eng, err := engine.Open(context.Background(), store)
	require.NoError(t, err)
	l := &updateOnlyLedger{Engine: eng}

	var m tea.Model = New(context.Background(), l, WithClock(fixedClock), WithSize(100, 30))
	update := func(msg tea.Msg) {
		l.inUpdate = true
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		l.inUpdate = false
		if cmd != nil {
			cmd()
		}
	}

	fields := ledger.Fields{Category: "Food", Date: "2024-03-09", Amount: "4", Description: "tea", PaymentMethod: "Cash"}
	for range 20 {
		update(components.SubmitMsg{Fields: fields})
	}
	require.Len(t, eng.Records(), 20)

	for _, id := range []int64{3, 7, 7} {
		update(components.DeleteMsg{ID: id})
	}

	assert.Len(t, eng.Records(), 18)
	assert.Equal(t, 22, store.Saves)
	assert.Zero(t, l.outside)
	assert.Contains(t, tuitest.StripANSI(m.View()), "expense not found")
}

func TestChartView(t *testing.T) {
	d, _, _ := newTestUI(t,
		testutil.Expense(model.CategoryFood, "10", "a"),
		testutil.Expense(model.CategoryTravel, "20", "b"),
	)

	d.Press("tab", "tab")
	view := d.View()
	assert.Contains(t, view, "Food")
	assert.Contains(t, view, "Travel")
	assert.Contains(t, view, "20.00")
}

func TestQuitKeys(t *testing.T) {
	t.Run("q quits outside text fields", func(t *testing.T) {
		d, _, _ := newTestUI(t)
		d.Press("tab", "q")
		assert.True(t, d.Quit)
		assert.Empty(t, d.View())
	})

	t.Run("q is typed into text fields", func(t *testing.T) {
		d, _, _ := newTestUI(t)
		d.Press("down", "down", "down", "q")
		assert.False(t, d.Quit)
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		d, _, _ := newTestUI(t)
		d.Press("down", "ctrl+c")
		assert.True(t, d.Quit)
	})
}

func TestHelpToggle(t *testing.T) {
	d, _, _ := newTestUI(t)
	d.Press("tab")
	assert.NotContains(t, d.View(), "force quit")

	d.Press("?")
	assert.Contains(t, d.View(), "force quit")
}

func TestWindowResizeLimitsListRows(t *testing.T) {
	d, _, _ := newTestUI(t,
		testutil.Expense(model.CategoryFood, "1", "first"),
		testutil.Expense(model.CategoryFood, "2", "second"),
		testutil.Expense(model.CategoryFood, "3", "third"),
	)
	d.Press("tab")

	d.Send(tuitest.WindowSize(100, 8))
	view := d.View()
	assert.Contains(t, view, "first")
	assert.NotContains(t, view, "third")
	assert.Contains(t, view, "Total: 6.00 (3 expenses)")

	d.Send(tuitest.WindowSize(100, 30))
	assert.Contains(t, d.View(), "third")
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "Add", ViewForm.String())
	assert.Equal(t, "Expenses", ViewList.String())
	assert.Equal(t, "Chart", ViewChart.String())
	assert.Equal(t, "Unknown", View(42).String())
}
