package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FormField identifies a row of the entry form.
type FormField int

// Form rows, top to bottom.
const (
	FieldCategory FormField = iota
	FieldDate
	FieldAmount
	FieldDescription
	FieldPayment
	fieldCount
)

var fieldLabels = [fieldCount]string{"Category", "Date", "Amount", "Description", "Payment method"}

// FormModel collects the five raw fields of a new expense. Category and
// payment method cycle through the fixed sets; the rest are free text.
type FormModel struct {
	theme       themes.Theme
	err         error
	date        textinput.Model
	amount      textinput.Model
	description textinput.Model
	categories  []model.Category
	payments    []model.PaymentMethod
	category    int
	payment     int
	focus       FormField
}

// NewForm creates an empty form with the date prefilled to today.
func NewForm(theme themes.Theme, today string) FormModel {
	date := newInput("YYYY-MM-DD", 10)
	date.SetValue(today)
	amount := newInput("0.00", 32)
	description := newInput("What was it for?", 200)

	return FormModel{
		theme:       theme,
		date:        date,
		amount:      amount,
		description: description,
		categories:  model.Categories(),
		payments:    model.PaymentMethods(),
		focus:       FieldCategory,
	}
}

// newInput creates a text input with a steady (non-blinking) cursor.
func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// Fields returns the current raw values.
func (m FormModel) Fields() ledger.Fields {
	return ledger.Fields{
		Category:      string(m.categories[m.category]),
		Date:          m.date.Value(),
		Amount:        m.amount.Value(),
		Description:   m.description.Value(),
		PaymentMethod: string(m.payments[m.payment]),
	}
}

// Focus returns the focused row.
func (m FormModel) Focus() FormField {
	return m.focus
}

// Typing reports whether keystrokes currently go to a text input.
func (m FormModel) Typing() bool {
	return m.input(m.focus) != nil
}

// Err returns the last validation error shown on the form.
func (m FormModel) Err() error {
	return m.err
}

// SetError shows err under the form. The entered values are kept.
func (m *FormModel) SetError(err error) {
	m.err = err
}

// Reset clears the text fields after a successful submit. Category and
// payment method keep their selection.
func (m *FormModel) Reset(today string) {
	m.date.SetValue(today)
	m.amount.SetValue("")
	m.description.SetValue("")
	m.err = nil
	m.setFocus(FieldCategory)
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "shift+tab":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "down":
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case "enter":
		if m.focus == fieldCount-1 {
			return m, m.submit()
		}
		return m, m.setFocus(m.focus + 1)
	case "ctrl+s":
		return m, m.submit()
	case "left", "right":
		if m.cycle(keyMsg.String() == "right") {
			return m, nil
		}
	}

	if in := m.input(m.focus); in != nil {
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m FormModel) submit() tea.Cmd {
	fields := m.Fields()
	return func() tea.Msg {
		return SubmitMsg{Fields: fields}
	}
}

// cycle moves the selection of a choice row. It reports false when the
// focused row is not a choice.
func (m *FormModel) cycle(forward bool) bool {
	step := -1
	if forward {
		step = 1
	}
	switch m.focus {
	case FieldCategory:
		m.category = (m.category + step + len(m.categories)) % len(m.categories)
	case FieldPayment:
		m.payment = (m.payment + step + len(m.payments)) % len(m.payments)
	default:
		return false
	}
	return true
}

func (m *FormModel) setFocus(f FormField) tea.Cmd {
	if in := m.input(m.focus); in != nil {
		in.Blur()
	}
	m.focus = f
	if in := m.input(f); in != nil {
		return in.Focus()
	}
	return nil
}

func (m *FormModel) input(f FormField) *textinput.Model {
	switch f {
	case FieldDate:
		return &m.date
	case FieldAmount:
		return &m.amount
	case FieldDescription:
		return &m.description
	}
	return nil
}

// View renders the form.
func (m FormModel) View() string {
	rows := make([]string, 0, fieldCount+2)
	for f := FormField(0); f < fieldCount; f++ {
		label := m.theme.Label.Render(fieldLabels[f])
		marker := "  "
		if f == m.focus {
			label = m.theme.FocusedLabel.Render(fieldLabels[f])
			marker = "▸ "
		}
		rows = append(rows, marker+label+m.valueView(f))
	}

	rows = append(rows, "")
	if m.err != nil {
		rows = append(rows, m.theme.StatusError.Render("✗ "+m.err.Error()))
	} else {
		rows = append(rows, m.theme.Subtle.Render("↑/↓ move  ←/→ choose  enter next  ctrl+s save"))
	}
	return strings.Join(rows, "\n")
}

func (m FormModel) valueView(f FormField) string {
	switch f {
	case FieldCategory:
		c := m.categories[m.category]
		return m.choice(fmt.Sprintf("%s %s", themes.CategoryIcon(c), c), f)
	case FieldPayment:
		return m.choice(string(m.payments[m.payment]), f)
	}
	return m.input(f).View()
}

func (m FormModel) choice(value string, f FormField) string {
	if f != m.focus {
		return value
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, "‹ ", m.theme.Bold.Render(value), " ›")
}
