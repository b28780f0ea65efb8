package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
)

// WriteExpenseTable writes records as an aligned table followed by the total.
func WriteExpenseTable(out io.Writer, records []model.Expense) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Date"),
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Amount"),
		TableHeaderStyle.Render("Payment"),
		TableHeaderStyle.Render("Description"),
	); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range records {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Date,
			e.Category,
			e.Amount.StringFixed(2),
			e.PaymentMethod,
			singleLine(e.Description),
		); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		slog.Error("failed to flush table writer", "error", err)
		return err
	}

	_, err := fmt.Fprintf(out, "\n%s %s (%d expenses)\n",
		BoldStyle.Render("Total:"),
		ledger.Sum(records).StringFixed(2),
		len(records))
	return err
}

// singleLine keeps multi-line descriptions on one table row.
func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}
