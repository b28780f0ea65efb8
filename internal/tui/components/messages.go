// Package components contains the views composed by the terminal UI.
package components

import "github.com/Veraticus/spent/internal/ledger"

// SubmitMsg is sent when the entry form is submitted.
type SubmitMsg struct {
	Fields ledger.Fields
}

// DeleteMsg requests removal of the expense with ID.
type DeleteMsg struct {
	ID int64
}
