package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/export"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	h := newHarness(t)
	addLunch(h)

	out := h.mustRun("export", "xlsx")
	defaultPath := filepath.Join(h.dir, "expenses.xlsx")
	assert.Contains(t, out, "Exported 1 expenses to "+defaultPath)

	f, err := excelize.OpenFile(defaultPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	category, err := f.GetCellValue(export.ExpensesSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Food", category)

	generated, err := f.GetCellValue(export.SummarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15 10:00", generated)
}

func TestExportXLSXOutputFlag(t *testing.T) {
	h := newHarness(t)
	target := filepath.Join(h.dir, "reports", "march.xlsx")

	out := h.mustRun("export", "xlsx", "-o", target)
	assert.Contains(t, out, "Exported 0 expenses")
	assert.FileExists(t, target)
}

func TestExportSheets(t *testing.T) {
	h := newHarness(t)
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", filepath.Join(h.dir, "sa.json"))
	addLunch(h)
	h.mustRun("add", "--no-input", "-c", "Travel", "-d", "2024-01-06", "-a", "30", "-m", "taxi", "-p", "Online")

	out := h.mustRun("export", "sheets")
	assert.Contains(t, out, "Exporting 2 expenses to Google Sheets")
	assert.Contains(t, out, "Export complete")

	require.Equal(t, 1, h.sheetsWriter.Calls())
	assert.Len(t, h.sheetsWriter.LastRecords, 2)
	require.NotNil(t, h.sheetsWriter.LastSummary)
	assert.Equal(t, testNow, h.sheetsWriter.LastSummary.GeneratedAt)
	assert.True(t, decimal.RequireFromString("42.5").Equal(h.sheetsWriter.LastSummary.TotalAmount))

	require.NotNil(t, h.sheetsCfg)
	assert.Equal(t, filepath.Join(h.dir, "sa.json"), h.sheetsCfg.ServiceAccountPath)
	assert.Equal(t, "Expenses", h.sheetsCfg.SpreadsheetName)
}

func TestExportSheetsUsesSavedToken(t *testing.T) {
	h := newHarness(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")

	h.mustRun("auth", "sheets")
	addLunch(h)
	h.mustRun("export", "sheets")

	require.NotNil(t, h.sheetsCfg)
	assert.Equal(t, "refresh-123", h.sheetsCfg.RefreshToken)
	assert.Equal(t, "env-id", h.sheetsCfg.ClientID)
	assert.Empty(t, h.sheetsCfg.ServiceAccountPath)
}

func TestExportSheetsErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		h := newHarness(t)
		addLunch(h)

		_, err := h.run("", "export", "sheets")
		assert.ErrorIs(t, err, sheets.ErrNoAuth)
		assert.Zero(t, h.sheetsWriter.Calls())
	})

	t.Run("nothing to export", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", filepath.Join(h.dir, "sa.json"))

		_, err := h.run("", "export", "sheets")
		assert.ErrorIs(t, err, common.ErrNothingToDo)
		assert.Zero(t, h.sheetsWriter.Calls())
	})

	t.Run("write fails", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", filepath.Join(h.dir, "sa.json"))
		addLunch(h)
		writeErr := errors.New("quota exceeded")
		h.sheetsWriter.SetWriteError(writeErr)

		_, err := h.run("", "export", "sheets")
		assert.ErrorIs(t, err, common.ErrExportFailed)
		assert.ErrorIs(t, err, writeErr)
	})
}
