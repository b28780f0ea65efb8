package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/engine"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/spf13/cobra"
)

// fieldFlags are the five expense fields shared by add and remove --match.
type fieldFlags struct {
	category    string
	date        string
	amount      string
	description string
	payment     string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "expense category ("+joinNames(model.Categories())+")")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "expense date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount spent")
	cmd.Flags().StringVarP(&f.description, "description", "m", "", "what the money was spent on")
	cmd.Flags().StringVarP(&f.payment, "payment", "p", "", "payment method ("+joinNames(model.PaymentMethods())+")")
}

// fields normalizes the choice flags and returns the raw field set.
func (f *fieldFlags) fields() (ledger.Fields, error) {
	category, err := normalizeCategory(f.category)
	if err != nil {
		return ledger.Fields{}, err
	}
	payment, err := normalizePayment(f.payment)
	if err != nil {
		return ledger.Fields{}, err
	}
	return ledger.Fields{
		Category:      category,
		Date:          f.date,
		Amount:        f.amount,
		Description:   f.description,
		PaymentMethod: payment,
	}, nil
}

func addCmd(a *app) *cobra.Command {
	var flags fieldFlags
	var noInput bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Long: `Record a new expense.

Fields not given as flags are asked for interactively unless --no-input is set.`,
		Example: `  spent add -c Food -d 2024-01-05 -a 12.50 -m lunch -p Cash
  spent add --amount 40 --description "train ticket"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			f, err := flags.fields()
			if err != nil {
				return err
			}
			if !noInput {
				prompter := cli.NewPrompter(cmd.InOrStdin(), out)
				if f, err = prompter.PromptFields(ctx, f); err != nil {
					return fmt.Errorf("failed to read expense: %w", err)
				}
			}

			return a.withEngine(ctx, func(eng *engine.Engine) error {
				added, err := eng.Add(ctx, f)
				if err != nil {
					return userFacing(err)
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added expense #%d: %s %s on %s (%s)",
					added.ID, added.Category, added.Amount.StringFixed(2), added.Date, added.Description)))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noInput, "no-input", false, "fail instead of prompting for missing fields")

	return cmd
}

func listCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded expenses",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			return a.withEngine(ctx, func(eng *engine.Engine) error {
				records := eng.Records()
				if category != "" {
					records = filterCategory(records, category)
				}
				if len(records) == 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render("No expenses recorded yet."))
					return nil
				}
				return cli.WriteExpenseTable(out, records)
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only show this category")

	return cmd
}

func removeCmd(a *app) *cobra.Command {
	var flags fieldFlags
	var force, match bool

	cmd := &cobra.Command{
		Use:     "remove [id]",
		Aliases: []string{"rm"},
		Short:   "Remove an expense",
		Long: `Remove an expense by the ID shown in "spent list".

With --match the expense is found by its five fields instead, and the first
matching record is removed.`,
		Example: `  spent remove 3
  spent remove --match -c Food -d 2024-01-05 -a 12.50 -m lunch -p Cash`,
		Args: func(cmd *cobra.Command, args []string) error {
			if match {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			return a.withEngine(ctx, func(eng *engine.Engine) error {
				var target model.Expense
				if match {
					f, err := flags.fields()
					if err != nil {
						return err
					}
					if target, err = ledger.Validate(f); err != nil {
						return userFacing(err)
					}
				} else {
					id, err := strconv.ParseInt(args[0], 10, 64)
					if err != nil {
						return common.NewUserError(fmt.Sprintf("invalid expense ID %q", args[0]), nil)
					}
					var ok bool
					if target, ok = eng.Get(id); !ok {
						return common.NewUserError(fmt.Sprintf("no expense with ID %d", id), ledger.ErrNotFound)
					}
				}

				if !force {
					fmt.Fprintf(out, "%s\n  %s  %s  %s  %s  %s\n",
						cli.FormatWarning("This will remove:"),
						target.Date, target.Category, target.Amount.StringFixed(2), target.PaymentMethod, target.Description)
					ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Continue?")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, cli.SubtleStyle.Render("Removal cancelled."))
						return nil
					}
				}

				var removed model.Expense
				var err error
				if match {
					removed, err = eng.RemoveMatching(ctx, target)
				} else {
					removed, err = eng.Remove(ctx, target.ID)
				}
				if err != nil {
					return userFacing(err)
				}

				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Removed expense #%d (%s %s)",
					removed.ID, removed.Category, removed.Amount.StringFixed(2))))
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	cmd.Flags().BoolVar(&match, "match", false, "find the expense by its fields instead of ID")

	return cmd
}

func totalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the total of all expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withEngine(ctx, func(eng *engine.Engine) error {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d expenses)\n",
					cli.BoldStyle.Render("Total:"), eng.Total().StringFixed(2), len(eng.Records()))
				return nil
			})
		},
	}
}

func chartCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show spending per category as a bar chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			return a.withEngine(ctx, func(eng *engine.Engine) error {
				fmt.Fprintln(out, cli.FormatTitle("Spending by category"))
				fmt.Fprintln(out, cli.RenderChart(eng.Bars(), width, cli.BarStyle))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", cli.DefaultChartWidth, "length of the longest bar")

	return cmd
}

func filterCategory(records []model.Expense, category string) []model.Expense {
	var out []model.Expense
	for _, r := range records {
		if strings.EqualFold(string(r.Category), category) {
			out = append(out, r)
		}
	}
	return out
}

// userFacing turns validation and lookup failures into messages for the
// terminal. Other errors pass through.
func userFacing(err error) error {
	switch {
	case errors.Is(err, ledger.ErrMissingField),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrNegativeAmount):
		return common.NewUserError("invalid expense", err)
	case errors.Is(err, ledger.ErrNotFound):
		return common.NewUserError("no matching expense", err)
	case errors.Is(err, engine.ErrPersist):
		return common.NewUserError("could not save the ledger; nothing was changed", err)
	}
	return err
}
