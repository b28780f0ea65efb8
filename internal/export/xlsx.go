// Package export writes the ledger to local spreadsheet files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/service"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the generated workbook.
const (
	ExpensesSheet = "Expenses"
	SummarySheet  = "Summary"
)

// ErrNoPath is returned when an XLSXWriter has nowhere to write.
var ErrNoPath = errors.New("xlsx export path is required")

var expenseHeader = []any{"ID", "Date", "Category", "Amount", "Description", "Payment Method"}

// XLSXWriter saves reports as an Excel workbook on disk.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates a writer targeting path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if path == "" {
		return nil, ErrNoPath
	}
	return &XLSXWriter{path: path}, nil
}

// Path returns the workbook location.
func (w *XLSXWriter) Path() string {
	return w.path
}

// Write implements service.ReportWriter.
func (w *XLSXWriter) Write(ctx context.Context, records []model.Expense, summary *service.ReportSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(w.path) // #nosec G304 - path comes from the user's command line
	if err != nil {
		return fmt.Errorf("failed to create workbook file: %w", err)
	}
	if err := WriteXLSX(f, records, summary); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteXLSX renders records and summary as a workbook with an Expenses
// sheet and a Summary sheet.
func WriteXLSX(w io.Writer, records []model.Expense, summary *service.ReportSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ExpensesSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeExpenses(f, styles, records); err != nil {
		return err
	}
	if summary != nil {
		if err := writeSummary(f, styles, summary); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

type styles struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create header style: %w", err)
	}
	// Built-in format 4 is "#,##0.00".
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return styles{}, fmt.Errorf("failed to create amount style: %w", err)
	}
	return styles{header: header, money: money}, nil
}

func writeExpenses(f *excelize.File, s styles, records []model.Expense) error {
	if err := f.SetSheetRow(ExpensesSheet, "A1", &expenseHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(ExpensesSheet, "A1", "F1", s.header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.ID, e.Date, string(e.Category), e.Amount.InexactFloat64(), e.Description, string(e.PaymentMethod)}
		if err := f.SetSheetRow(ExpensesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(records) > 0 {
		last := fmt.Sprintf("D%d", len(records)+1)
		if err := f.SetCellStyle(ExpensesSheet, "D2", last, s.money); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	widths := map[string]float64{"A": 6, "B": 12, "C": 16, "D": 12, "E": 40, "F": 16}
	for col, width := range widths {
		if err := f.SetColWidth(ExpensesSheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, s styles, summary *service.ReportSummary) error {
	dateRange := "no expenses"
	if summary.DateRange.Start != "" {
		dateRange = summary.DateRange.Start + " to " + summary.DateRange.End
	}

	rows := [][]any{
		{"Generated", summary.GeneratedAt.Format("2006-01-02 15:04")},
		{"Total Amount", summary.TotalAmount.InexactFloat64()},
		{"Total Expenses", summary.Records},
		{"Date Range", dateRange},
		{},
		{"Category", "Count", "Amount"},
	}
	for _, c := range summary.ByCategory {
		rows = append(rows, []any{c.Category, c.Count, c.Amount.InexactFloat64()})
	}

	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	const breakdownHeader = 6
	if err := f.SetCellStyle(SummarySheet, "A1", "A4", s.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, fmt.Sprintf("A%d", breakdownHeader), fmt.Sprintf("C%d", breakdownHeader), s.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "B2", "B2", s.money); err != nil {
		return err
	}
	if n := len(summary.ByCategory); n > 0 {
		last := fmt.Sprintf("C%d", breakdownHeader+n)
		if err := f.SetCellStyle(SummarySheet, fmt.Sprintf("C%d", breakdownHeader+1), last, s.money); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 18)
}
