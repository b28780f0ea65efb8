package components

import (
	"strings"
	"testing"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/tui/themes"
	"github.com/Veraticus/spent/internal/tui/tuitest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChart_View(t *testing.T) {
	m := NewChart(themes.Default)
	m.Resize(56)
	m.SetBars([]ledger.Bar{
		{Label: "Food", Amount: decimal.NewFromInt(30), Count: 2},
		{Label: "Travel", Amount: decimal.NewFromInt(15), Count: 1},
	})

	lines := strings.Split(tuitest.StripANSI(m.View()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Food")
	assert.Contains(t, lines[0], "30.00")
	assert.Equal(t, 20, strings.Count(lines[0], "█"))
	assert.Equal(t, 10, strings.Count(lines[1], "█"))
}

func TestChart_Empty(t *testing.T) {
	m := NewChart(themes.Default)
	assert.Contains(t, tuitest.StripANSI(m.View()), "No expenses to chart")
}
