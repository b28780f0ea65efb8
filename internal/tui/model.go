// Package tui is the interactive terminal interface: an entry form, the
// expense list with its running total and a category bar chart.
package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/tui/components"
	"github.com/Veraticus/spent/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Ledger is the application state the UI reads and mutates.
type Ledger interface {
	Add(ctx context.Context, f ledger.Fields) (model.Expense, error)
	Remove(ctx context.Context, id int64) (model.Expense, error)
	Records() []model.Expense
	Total() decimal.Decimal
	Bars() []ledger.Bar
}

// View identifies a screen of the UI.
type View int

// Screens in Tab order.
const (
	ViewForm View = iota
	ViewList
	ViewChart
	viewCount
)

func (v View) String() string {
	switch v {
	case ViewForm:
		return "Add"
	case ViewList:
		return "Expenses"
	case ViewChart:
		return "Chart"
	}
	return "Unknown"
}

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	ledger    Ledger
	config    Config
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	form      components.FormModel
	list      components.ListModel
	chart     components.ChartModel
	status    string
	statusErr bool
	view      View
	width     int
	height    int
	quitting  bool
}

// New creates the UI model over l. Mutations run with ctx.
func New(ctx context.Context, l Ledger, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:    ctx,
		ledger: l,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		form:   components.NewForm(cfg.Theme, cfg.Now().Format("2006-01-02")),
		list:   components.NewList(cfg.Theme),
		chart:  components.NewChart(cfg.Theme),
		view:   ViewForm,
	}
	m.resize(cfg.Width, cfg.Height)
	m.refresh()
	return m
}

// ActiveView returns the screen being shown.
func (m Model) ActiveView() View {
	return m.view
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}

	case components.SubmitMsg:
		m.addExpense(msg.Fields)
		return m, nil

	case components.DeleteMsg:
		m.removeExpense(msg.ID)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewList:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// handleGlobalKeys processes keys that work on every screen. Quit and help
// are left to the form while a text field has focus.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	typing := m.view == ViewForm && m.form.Typing()

	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keymap.NextView):
		m.view = (m.view + 1) % viewCount
		m.setStatus("", false)
		return nil, true
	case typing:
		return nil, false
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}
	return nil, false
}

// addExpense and removeExpense mutate the ledger from Update only. Commands
// run on their own goroutines and the ledger is not safe for concurrent use.
func (m *Model) addExpense(f ledger.Fields) {
	e, err := m.ledger.Add(m.ctx, f)
	if err != nil {
		m.form.SetError(err)
		m.setStatus("", false)
		return
	}
	m.form.Reset(m.config.Now().Format("2006-01-02"))
	m.refresh()
	m.setStatus(fmt.Sprintf("Added #%d: %s %s", e.ID, e.Category, e.Amount.StringFixed(2)), false)
}

func (m *Model) removeExpense(id int64) {
	e, err := m.ledger.Remove(m.ctx, id)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.refresh()
	m.setStatus(fmt.Sprintf("Removed #%d: %s", e.ID, e.Description), false)
}

// refresh copies the ledger state into the list and chart.
func (m *Model) refresh() {
	m.list.SetRecords(m.ledger.Records(), m.ledger.Total())
	m.chart.SetBars(m.ledger.Bars())
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	// Header (2), status (1) and help (2) surround the body.
	body := max(height-5, 3)
	m.list.Resize(width, body)
	m.chart.Resize(width)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}
