// Package themes holds the color schemes available to the terminal UI.
package themes

import (
	"sort"

	"github.com/Veraticus/spent/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtle        lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	Label         lipgloss.Style
	FocusedLabel  lipgloss.Style
	Bar           lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	BorderedBox   lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(palette{
	primary: lipgloss.Color("#7c3aed"),
	text:    lipgloss.Color("#fafafa"),
	muted:   lipgloss.Color("#737373"),
	border:  lipgloss.Color("#404040"),
	success: lipgloss.Color("#10b981"),
	errorC:  lipgloss.Color("#ef4444"),
})

// Ocean is a blue variant of Default.
var Ocean = newTheme(palette{
	primary: lipgloss.Color("#0ea5e9"),
	text:    lipgloss.Color("#e0f2fe"),
	muted:   lipgloss.Color("#64748b"),
	border:  lipgloss.Color("#334155"),
	success: lipgloss.Color("#2dd4bf"),
	errorC:  lipgloss.Color("#f97316"),
})

// Mono uses only bold, faint and reverse attributes.
var Mono = Theme{
	Title:         lipgloss.NewStyle().Bold(true).MarginBottom(1),
	Subtle:        lipgloss.NewStyle().Faint(true),
	Normal:        lipgloss.NewStyle(),
	Bold:          lipgloss.NewStyle().Bold(true),
	Selected:      lipgloss.NewStyle().Reverse(true),
	ActiveTab:     lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1),
	InactiveTab:   lipgloss.NewStyle().Faint(true).Padding(0, 1),
	Label:         lipgloss.NewStyle().Width(16),
	FocusedLabel:  lipgloss.NewStyle().Width(16).Bold(true),
	Bar:           lipgloss.NewStyle(),
	StatusError:   lipgloss.NewStyle().Bold(true),
	StatusSuccess: lipgloss.NewStyle(),
	BorderedBox:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
}

var registry = map[string]Theme{
	"default": Default,
	"ocean":   Ocean,
	"mono":    Mono,
}

// Lookup returns the theme registered under name.
func Lookup(name string) (Theme, bool) {
	t, ok := registry[name]
	return t, ok
}

// Names lists the registered theme names in order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryIcon returns the icon shown next to a category.
func CategoryIcon(c model.Category) string {
	switch c {
	case model.CategoryFood:
		return "🍔"
	case model.CategoryTravel:
		return "✈️"
	case model.CategoryShopping:
		return "🛍️"
	case model.CategoryRecharge:
		return "📱"
	case model.CategoryEntertainment:
		return "🎬"
	}
	return "📦"
}

type palette struct {
	primary lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	border  lipgloss.Color
	success lipgloss.Color
	errorC  lipgloss.Color
}

func newTheme(p palette) Theme {
	return Theme{
		Primary: p.primary,
		Muted:   p.muted,
		Border:  p.border,
		Error:   p.errorC,
		Success: p.success,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			MarginBottom(1),
		Subtle: lipgloss.NewStyle().
			Foreground(p.muted),
		Normal: lipgloss.NewStyle().
			Foreground(p.text),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.text).
			Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			Background(p.primary).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Width(16).
			Foreground(p.muted),
		FocusedLabel: lipgloss.NewStyle().
			Width(16).
			Bold(true).
			Foreground(p.primary),
		Bar: lipgloss.NewStyle().
			Foreground(p.primary),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errorC).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
	}
}
