package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/service"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/Veraticus/spent/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

// app carries the configuration and the external collaborators shared by
// every command. Tests replace the collaborators.
type app struct {
	v       *viper.Viper
	logger  *slog.Logger
	now     func() time.Time
	cfgFile string

	newSheetsWriter func(ctx context.Context, cfg sheets.Config, logger *slog.Logger) (service.ReportWriter, error)
	authorize       func(ctx context.Context, cfg sheets.AuthConfig) (*oauth2.Token, error)
	runUI           func(ctx context.Context, l tui.Ledger, opts ...tui.Option) error
	openURL         func(url string)
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		logger: slog.Default(),
		now:    time.Now,
		newSheetsWriter: func(ctx context.Context, cfg sheets.Config, logger *slog.Logger) (service.ReportWriter, error) {
			return sheets.NewWriter(ctx, cfg, logger)
		},
		authorize: sheets.Authorize,
		runUI:     tui.Run,
		openURL:   openBrowser,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "spent",
		Short: "💸 Track where your money went",
		Long: `spent records everyday expenses in a plain text ledger.

Add expenses from the command line or the terminal UI, import bank and card
statements, chart spending by category and export to Google Sheets or Excel.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/spent/config.yaml)")
	flags.String("store", "", "path of the expense store")
	flags.String("backend", "", "store backend (file, sqlite)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = a.v.BindPFlag("store.path", flags.Lookup("store"))
	_ = a.v.BindPFlag("store.backend", flags.Lookup("backend"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	root.AddCommand(addCmd(a))
	root.AddCommand(listCmd(a))
	root.AddCommand(removeCmd(a))
	root.AddCommand(totalCmd(a))
	root.AddCommand(chartCmd(a))
	root.AddCommand(importCmd(a))
	root.AddCommand(exportCmd(a))
	root.AddCommand(checkpointCmd(a))
	root.AddCommand(authCmd(a))
	root.AddCommand(uiCmd(a))
	root.AddCommand(versionCmd())

	return root
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}

	level, err := common.ParseLevel(a.v.GetString("logging.level"))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	format := a.v.GetString("logging.format")
	if format != "console" && format != "json" {
		return fmt.Errorf("failed to setup logging: %w: log format %q", common.ErrInvalidConfig, format)
	}

	a.logger = common.SetupLogger(cmd.ErrOrStderr(), level, format)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spent %s\n", version)
		},
	}
}
