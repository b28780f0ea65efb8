package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/engine"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/ofx"
	"github.com/Veraticus/spent/internal/storage"
	"github.com/spf13/cobra"
)

func importCmd(a *app) *cobra.Command {
	var category string
	var dryRun, noCheckpoint bool

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import expenses from OFX/QFX statements",
		Long: `Import the debits of bank and credit card statements as expenses.

Credits such as deposits and refunds are skipped. Every imported expense is
filed under --category unless an import rule from the config file matches
its description. A checkpoint of the ledger is taken first so the
import can be undone with "spent checkpoint restore".`,
		Example: `  spent import ~/Downloads/checking.qfx
  spent import --category Shopping card-*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cat, err := normalizeCategory(category)
			if err != nil {
				return err
			}

			rules, err := config.LoadImportRules(a.v)
			if err != nil {
				return common.NewUserError("check import.rules in your config", err)
			}

			interrupts := cli.NewInterruptHandler(out, "Import", "Nothing was saved. Run the import again.")
			ctx := interrupts.HandleInterrupts(cmd.Context())
			defer interrupts.Stop()

			parser := ofx.NewParser(model.Category(cat))
			progress := cli.NewProgress(out, len(args), "Parsing statements...")

			var expenses []model.Expense
			for _, path := range args {
				if err := importCanceled(ctx, interrupts); err != nil {
					return err
				}

				parsed, err := parseStatement(ctx, parser, path)
				if err != nil {
					return err
				}
				expenses = append(expenses, parsed...)
				_ = progress.Add(1)
			}

			if len(expenses) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No debits found in the given statements."))
				return nil
			}

			if n := rules.Apply(expenses); n > 0 {
				common.LogInfo("categorized expenses by import rules", common.Fields{"count": n, "rules": rules.Len()})
			}

			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Would import %d expenses:", len(expenses))))
				return cli.WriteExpenseTable(out, expenses)
			}

			if err := importCanceled(ctx, interrupts); err != nil {
				return err
			}

			store, cfg, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					a.logger.Warn("failed to close store", "error", closeErr)
				}
			}()

			if !noCheckpoint {
				manager, err := storage.NewCheckpointManager(store, cfg.Backend)
				if err != nil {
					return fmt.Errorf("failed to create checkpoint manager: %w", err)
				}
				info, err := manager.AutoCheckpoint(ctx, "import")
				if err != nil {
					return fmt.Errorf("failed to checkpoint before import: %w", err)
				}
				common.LogDebug("created checkpoint before import", common.Fields{"id": info.ID})
			}

			eng, err := engine.Open(ctx, store)
			if err != nil {
				return err
			}
			if err := importCanceled(ctx, interrupts); err != nil {
				return err
			}
			imported, err := eng.Import(ctx, expenses)
			if err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses from %d statements (new total %s)",
				len(imported), len(args), eng.Total().StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryOther), "category for imported expenses")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without saving")
	cmd.Flags().BoolVar(&noCheckpoint, "no-checkpoint", false, "skip the automatic checkpoint")

	return cmd
}

// importCanceled reports whether the import must stop before the next step.
func importCanceled(ctx context.Context, interrupts *cli.InterruptHandler) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if interrupts.WasInterrupted() {
		return common.NewUserError("import interrupted", err)
	}
	return err
}

// parseStatement reads one statement file.
func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]model.Expense, error) {
	file, err := os.Open(filepath.Clean(path)) // #nosec G304 - user-provided statement path
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("cannot read %s", path), err)
	}
	defer func() { _ = file.Close() }()

	expenses, err := parser.ParseFile(ctx, file)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("%s is not a readable OFX/QFX statement", path), err)
	}
	return expenses, nil
}
