package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/engine"
	"github.com/Veraticus/spent/internal/tui"
	"github.com/Veraticus/spent/internal/tui/themes"
	"github.com/spf13/cobra"
)

func uiCmd(a *app) *cobra.Command {
	var theme string
	var inline, help bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive expense tracker",
		Long: `Open a terminal UI with three views: a form for adding expenses, the
expense list, and a chart of spending by category.

Press tab to switch views, ? for help and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := theme
			if name == "" {
				name = a.v.GetString("ui.theme")
			}
			selected, ok := themes.Lookup(strings.ToLower(name))
			if !ok {
				return common.NewUserError(
					fmt.Sprintf("unknown theme %q (choose one of %s)", name, strings.Join(themes.Names(), ", ")),
					common.ErrInvalidConfig)
			}

			return a.withEngine(cmd.Context(), func(eng *engine.Engine) error {
				common.LogDebug("starting terminal UI", common.Fields{"store": eng.StorePath(), "theme": name})
				err := a.runUI(cmd.Context(), eng,
					tui.WithTheme(selected),
					tui.WithClock(a.now),
					tui.WithHelp(help),
					tui.WithAltScreen(!inline),
				)
				if err != nil {
					common.LogError(err, "terminal UI exited", common.Fields{"records": len(eng.Records())})
				}
				return err
			})
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, ocean, mono)")
	cmd.Flags().BoolVar(&inline, "inline", false, "render inline instead of the alternate screen")
	cmd.Flags().BoolVar(&help, "help-keys", false, "start with the key help expanded")

	return cmd
}
