package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/storage"
	"github.com/spf13/cobra"
)

func checkpointCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage ledger checkpoints",
		Long: `Create, list, restore, and delete ledger checkpoints.

A checkpoint is a snapshot of every expense in the store. Imports and
restores take one automatically; the five most recent automatic checkpoints
are kept.`,
		Example: `  spent checkpoint create --tag before-cleanup
  spent checkpoint list
  spent checkpoint restore before-cleanup
  spent checkpoint delete before-cleanup`,
	}

	cmd.AddCommand(createCheckpointCmd(a))
	cmd.AddCommand(listCheckpointsCmd(a))
	cmd.AddCommand(restoreCheckpointCmd(a))
	cmd.AddCommand(deleteCheckpointCmd(a))

	return cmd
}

func createCheckpointCmd(a *app) *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return a.withCheckpoints(cmd.Context(), func(manager *storage.CheckpointManager) error {
				info, err := manager.Create(cmd.Context(), tag, description)
				if err != nil {
					return checkpointError(err)
				}

				fmt.Fprintf(out, "%s Created checkpoint %s (%s, %s)\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(info.ID),
					plural(info.RecordCount, "expense"),
					formatFileSize(info.FileSize))
				if info.Description != "" {
					fmt.Fprintf(out, "  Description: %s\n", info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "checkpoint name (generated when empty)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the checkpoint")

	return cmd
}

func listCheckpointsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all checkpoints",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return a.withCheckpoints(cmd.Context(), func(manager *storage.CheckpointManager) error {
				checkpoints, err := manager.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}

				if len(checkpoints) == 0 {
					fmt.Fprintln(out, cli.SubtleStyle.Render("No checkpoints found."))
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				headers := []string{"NAME", "CREATED", "SIZE", "RECORDS", "TOTAL", "TYPE"}
				for i, h := range headers {
					headers[i] = cli.TableHeaderStyle.Render(h)
				}
				fmt.Fprintln(w, strings.Join(headers, "\t"))

				now := a.now()
				for _, cp := range checkpoints {
					kind := "manual"
					if cp.IsAuto {
						kind = "auto"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
						cp.ID,
						formatRelativeTime(cp.CreatedAt, now),
						formatFileSize(cp.FileSize),
						cp.RecordCount,
						cp.Total.StringFixed(2),
						kind,
					)
				}
				return w.Flush()
			})
		},
	}
}

func restoreCheckpointCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <checkpoint>",
		Short: "Replace the ledger with a checkpoint",
		Long: `Replace every expense in the store with the contents of a checkpoint.

The current ledger is saved as an automatic checkpoint first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			tag := args[0]

			return a.withCheckpoints(ctx, func(manager *storage.CheckpointManager) error {
				info, err := manager.Info(ctx, tag)
				if err != nil {
					return checkpointError(err)
				}

				if !force {
					fmt.Fprintf(out, "%s This will replace your ledger with checkpoint %s.\n",
						cli.WarningStyle.Render(cli.WarningIcon),
						cli.InfoStyle.Render(info.ID))
					fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
					fmt.Fprintf(out, "  Expenses: %d (total %s)\n", info.RecordCount, info.Total.StringFixed(2))
					if info.Description != "" {
						fmt.Fprintf(out, "  Description: %s\n", info.Description)
					}

					ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Continue?")
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, cli.SubtleStyle.Render("Restore cancelled."))
						return nil
					}
				}

				backup, err := manager.AutoCheckpoint(ctx, "restore")
				if err != nil {
					return fmt.Errorf("failed to checkpoint before restore: %w", err)
				}
				a.logger.Info("created checkpoint before restore", "id", backup.ID)

				restored, err := manager.Restore(ctx, tag)
				if err != nil {
					return checkpointError(err)
				}

				fmt.Fprintf(out, "%s Restored %s from checkpoint %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					plural(restored.RecordCount, "expense"),
					cli.InfoStyle.Render(restored.ID))
				fmt.Fprintln(out, cli.SubtleStyle.Render("Previous ledger saved as "+backup.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func deleteCheckpointCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <checkpoint>",
		Short: "Delete a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			tag := args[0]

			return a.withCheckpoints(ctx, func(manager *storage.CheckpointManager) error {
				if !force {
					if _, err := manager.Info(ctx, tag); err != nil {
						return checkpointError(err)
					}
					ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, fmt.Sprintf("Delete checkpoint %s?", tag))
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(out, cli.SubtleStyle.Render("Deletion cancelled."))
						return nil
					}
				}

				if err := manager.Delete(ctx, tag); err != nil {
					return checkpointError(err)
				}

				fmt.Fprintf(out, "%s Deleted checkpoint %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(tag))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

func checkpointError(err error) error {
	switch {
	case errors.Is(err, storage.ErrCheckpointNotFound):
		return common.NewUserError("no such checkpoint; see 'spent checkpoint list'", err)
	case errors.Is(err, storage.ErrCheckpointExists):
		return common.NewUserError("a checkpoint with that name already exists", err)
	case errors.Is(err, storage.ErrCheckpointCorrupted):
		return common.NewUserError("the checkpoint is damaged and was not restored", err)
	case errors.Is(err, storage.ErrInvalidTag):
		return common.NewUserError("checkpoint names cannot contain path separators", err)
	}
	return err
}
