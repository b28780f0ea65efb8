package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// DefaultChartWidth is the bar length used for the largest category.
const DefaultChartWidth = 40

// RenderChart draws one horizontal bar per category, scaled so the largest
// amount spans width cells. Non-zero amounts always get at least one cell.
func RenderChart(bars []ledger.Bar, width int, style lipgloss.Style) string {
	if len(bars) == 0 {
		return SubtleStyle.Render("No expenses to chart.")
	}
	if width <= 0 {
		width = DefaultChartWidth
	}

	labelWidth := 0
	maxAmount := decimal.Zero
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.Label))
		if b.Amount.GreaterThan(maxAmount) {
			maxAmount = b.Amount
		}
	}

	var sb strings.Builder
	for _, b := range bars {
		cells := BarCells(b.Amount, maxAmount, width)
		fmt.Fprintf(&sb, "%s%s %s%s %s\n",
			b.Label, strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label)),
			style.Render(strings.Repeat("█", cells)),
			strings.Repeat(" ", width-cells),
			b.Amount.StringFixed(2))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// BarCells scales amount against maxAmount onto width cells.
func BarCells(amount, maxAmount decimal.Decimal, width int) int {
	if !amount.IsPositive() || !maxAmount.IsPositive() {
		return 0
	}
	cells := int(amount.Div(maxAmount).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	return min(max(cells, 1), width)
}
