package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/engine"
	"github.com/Veraticus/spent/internal/export"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to a spreadsheet",
		Long: `Export every expense together with a per-category summary.

Use "export sheets" for Google Sheets or "export xlsx" for an Excel workbook.`,
	}

	cmd.AddCommand(exportSheetsCmd(a))
	cmd.AddCommand(exportXLSXCmd(a))

	return cmd
}

func exportSheetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Export to Google Sheets",
		Long: `Write the ledger to a Google Sheets spreadsheet.

Authenticate with a service account (sheets.service_account_path) or with
OAuth2 credentials obtained through "spent auth sheets".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sheetsCfg, err := config.LoadSheetsConfig(a.v)
			if err != nil {
				if errors.Is(err, sheets.ErrNoAuth) {
					return common.NewUserError(
						"Google Sheets is not configured; run 'spent auth sheets' or set sheets.service_account_path", err)
				}
				return common.NewUserError("invalid Google Sheets configuration", err)
			}

			return a.withEngine(ctx, func(eng *engine.Engine) error {
				records := eng.Records()
				if len(records) == 0 {
					return common.NewUserError("no expenses to export", common.ErrNothingToDo)
				}

				writer, err := a.newSheetsWriter(ctx, *sheetsCfg, a.logger)
				if err != nil {
					return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
				}

				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Exporting %d expenses to Google Sheets...", len(records))))
				if err := writer.Write(ctx, records, eng.Summary(a.now())); err != nil {
					return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
				}

				fmt.Fprintln(out, cli.FormatSuccess("Export complete"))
				return nil
			})
		},
	}
}

func exportXLSXCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Export to an Excel workbook",
		Long: `Write the ledger to an Excel workbook with an Expenses and a Summary sheet.

Without --output the workbook is written next to the store as expenses.xlsx.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			return a.withEngine(ctx, func(eng *engine.Engine) error {
				path := output
				if path == "" {
					path = filepath.Join(filepath.Dir(eng.StorePath()), "expenses.xlsx")
				}
				return a.writeXLSX(ctx, eng, config.ExpandPath(path), out)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "workbook path")

	return cmd
}

func (a *app) writeXLSX(ctx context.Context, eng *engine.Engine, path string, out io.Writer) error {
	writer, err := export.NewXLSXWriter(path)
	if err != nil {
		return common.NewUserError("no output path for the workbook", err)
	}

	records := eng.Records()
	if err := writer.Write(ctx, records, eng.Summary(a.now())); err != nil {
		return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(records), writer.Path())))
	return nil
}
