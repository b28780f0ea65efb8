package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{"success", FormatSuccess, SuccessIcon},
		{"error", FormatError, ErrorIcon},
		{"warning", FormatWarning, WarningIcon},
		{"info", FormatInfo, InfoIcon},
		{"title", FormatTitle, WalletIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format("hello")
			assert.Contains(t, got, tt.icon)
			assert.Contains(t, got, "hello")
		})
	}
}

func TestRenderBox(t *testing.T) {
	got := RenderBox("Summary", "3 expenses")
	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "3 expenses")
}

func TestWriteExpenseTable(t *testing.T) {
	records := []model.Expense{
		{ID: 1, Category: model.CategoryFood, Date: "2024-01-05", Amount: decimal.RequireFromString("12.5"), Description: "lunch\nwith team", PaymentMethod: model.PaymentCash},
		{ID: 2, Category: model.CategoryTravel, Date: "2024-01-06", Amount: decimal.NewFromInt(40), Description: "train", PaymentMethod: model.PaymentOnline},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenseTable(&buf, records))

	out := buf.String()
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "lunch with team")
	assert.Contains(t, out, "52.50")
	assert.Contains(t, out, "(2 expenses)")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 5)
}

func TestBarCells(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		max      string
		expected int
	}{
		{"largest fills width", "50", "50", 10},
		{"half", "25", "50", 5},
		{"tiny gets one cell", "0.01", "50", 1},
		{"zero", "0", "50", 0},
		{"zero max", "0", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BarCells(decimal.RequireFromString(tt.amount), decimal.RequireFromString(tt.max), 10)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderChart(t *testing.T) {
	bars := []ledger.Bar{
		{Label: "Food", Amount: decimal.NewFromInt(50), Count: 2},
		{Label: "Travel", Amount: decimal.NewFromInt(25), Count: 1},
	}

	got := RenderChart(bars, 10, lipgloss.NewStyle())
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 10, strings.Count(lines[0], "█"))
	assert.Equal(t, 5, strings.Count(lines[1], "█"))
	assert.Contains(t, lines[0], "50.00")
	assert.True(t, strings.HasPrefix(lines[0], "Food  "))

	assert.Contains(t, RenderChart(nil, 10, lipgloss.NewStyle()), "No expenses")
}
