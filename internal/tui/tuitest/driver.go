package tuitest

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Driver feeds messages to a model and runs the commands it returns
// synchronously, the way the bubbletea runtime would.
type Driver struct {
	Model tea.Model
	// Messages holds every message produced by a command.
	Messages []tea.Msg
	Quit     bool
}

// NewDriver wraps m. Init is not called.
func NewDriver(m tea.Model) *Driver {
	return &Driver{Model: m}
}

// Send delivers msgs in order.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	for _, msg := range msgs {
		d.deliver(msg, 0)
	}
	return d
}

// Press sends the named keys in order.
func (d *Driver) Press(keys ...string) *Driver {
	for _, k := range keys {
		d.Send(Key(k))
	}
	return d
}

// Type sends text one rune at a time.
func (d *Driver) Type(text string) *Driver {
	return d.Send(Type(text)...)
}

// View returns the current view without ANSI codes.
func (d *Driver) View() string {
	return StripANSI(d.Model.View())
}

// maxDepth bounds command chains that keep re-arming themselves.
const maxDepth = 8

func (d *Driver) deliver(msg tea.Msg, depth int) {
	if _, ok := msg.(tea.QuitMsg); ok {
		d.Quit = true
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, depth+1)
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	if cmd == nil || depth > maxDepth {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth)
		}
		return
	case tea.QuitMsg:
		d.Quit = true
		return
	}
	d.Messages = append(d.Messages, msg)
	d.deliver(msg, depth)
}
