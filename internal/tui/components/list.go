package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// ListModel shows the recorded expenses with a cursor and the running total.
type ListModel struct {
	theme   themes.Theme
	total   decimal.Decimal
	records []model.Expense
	cursor  int
	offset  int
	width   int
	height  int
}

// NewList creates an empty list.
func NewList(theme themes.Theme) ListModel {
	return ListModel{theme: theme, width: 80, height: 20}
}

// SetRecords replaces the displayed records, keeping the cursor in range.
func (m *ListModel) SetRecords(records []model.Expense, total decimal.Decimal) {
	m.records = records
	m.total = total
	m.cursor = min(m.cursor, max(len(records)-1, 0))
	m.clampOffset()
}

// Resize sets the available space.
func (m *ListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

// Cursor returns the selected row index.
func (m ListModel) Cursor() int {
	return m.cursor
}

// Selected returns the expense under the cursor.
func (m ListModel) Selected() (model.Expense, bool) {
	if len(m.records) == 0 {
		return model.Expense{}, false
	}
	return m.records[m.cursor], true
}

// Update handles messages.
func (m ListModel) Update(msg tea.Msg) (ListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, max(len(m.records)-1, 0))
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(len(m.records)-1, 0)
	case "d", "delete", "x":
		if e, ok := m.Selected(); ok {
			id := e.ID
			return m, func() tea.Msg { return DeleteMsg{ID: id} }
		}
	}
	m.clampOffset()
	return m, nil
}

// visibleRows is the number of record rows that fit above the total line.
func (m ListModel) visibleRows() int {
	return max(m.height-2, 1)
}

func (m *ListModel) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(min(m.offset, len(m.records)-rows), 0)
}

// View renders the list.
func (m ListModel) View() string {
	if len(m.records) == 0 {
		return m.theme.Subtle.Render("No expenses yet. Press Tab to add one.")
	}

	end := min(m.offset+m.visibleRows(), len(m.records))
	lines := make([]string, 0, end-m.offset+2)
	for i := m.offset; i < end; i++ {
		row := m.row(m.records[i])
		if i == m.cursor {
			lines = append(lines, m.theme.Selected.Render("▸ "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	lines = append(lines, "", m.theme.Bold.Render(
		fmt.Sprintf("Total: %s (%d expenses)", m.total.StringFixed(2), len(m.records))))
	return strings.Join(lines, "\n")
}

func (m ListModel) row(e model.Expense) string {
	desc := strings.Join(strings.Fields(e.Description), " ")
	line := fmt.Sprintf("#%-4d %s  %s %-13s %10s  %-11s  %s",
		e.ID, e.Date, themes.CategoryIcon(e.Category), e.Category,
		e.Amount.StringFixed(2), e.PaymentMethod, desc)
	if m.width > 0 && len([]rune(line)) > m.width-2 {
		line = string([]rune(line)[:max(m.width-3, 0)]) + "…"
	}
	return line
}
