package components

import (
	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/themes"
)

// ChartModel renders per-category totals as horizontal bars.
type ChartModel struct {
	theme themes.Theme
	bars  []ledger.Bar
	width int
}

// NewChart creates an empty chart.
func NewChart(theme themes.Theme) ChartModel {
	return ChartModel{theme: theme, width: 80}
}

// SetBars replaces the chart data.
func (m *ChartModel) SetBars(bars []ledger.Bar) {
	m.bars = bars
}

// Resize sets the available width.
func (m *ChartModel) Resize(width int) {
	m.width = width
}

// View renders the chart.
func (m ChartModel) View() string {
	labeled := make([]ledger.Bar, len(m.bars))
	for i, b := range m.bars {
		labeled[i] = b
		labeled[i].Label = themes.CategoryIcon(model.Category(b.Label)) + " " + b.Label
	}
	// Room for the label column and the amount.
	barWidth := max(m.width-36, 10)
	return cli.RenderChart(labeled, barWidth, m.theme.Bar)
}
