package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderTabs(), ""}

	switch m.view {
	case ViewForm:
		sections = append(sections, m.form.View())
	case ViewList:
		sections = append(sections, m.list.View())
	case ViewChart:
		sections = append(sections, m.chart.View())
	}

	sections = append(sections, "", m.renderStatus(), m.help.View(m.keymap))
	return strings.Join(sections, "\n")
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, viewCount+1)
	tabs = append(tabs, m.theme.Bold.Render("💸 spent "))
	for v := View(0); v < viewCount; v++ {
		if v == m.view {
			tabs = append(tabs, m.theme.ActiveTab.Render(v.String()))
		} else {
			tabs = append(tabs, m.theme.InactiveTab.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.statusErr:
		return m.theme.StatusError.Render("✗ " + m.status)
	}
	return m.theme.StatusSuccess.Render("✓ " + m.status)
}
