package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Veraticus/spent/internal/cli"
	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/spf13/cobra"
)

func authCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd(a))

	return cmd
}

func authSheetsCmd(a *app) *cobra.Command {
	var clientID, clientSecret, listen, tokenFile string
	var timeout time.Duration
	var save bool

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

Opens the Google consent page in your browser and waits for the redirect.
The token is stored in the token file (sheets.token_file), which
"spent export sheets" reads when no refresh token is configured. The
refresh token is also printed; with --save it is written to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if clientID == "" {
				clientID = config.FirstNonEmpty(a.v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
			}
			if clientSecret == "" {
				clientSecret = config.FirstNonEmpty(a.v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
			}
			if clientID == "" || clientSecret == "" {
				return common.NewUserError(
					"OAuth2 credentials not found; set sheets.client_id and sheets.client_secret or use --client-id and --client-secret",
					common.ErrMissingConfig)
			}

			tokenPath := config.ExpandPath(config.FirstNonEmpty(tokenFile, a.v.GetString("sheets.token_file")))
			a.logger.Info("starting Google Sheets authentication", "token_file", tokenPath)

			token, err := a.authorize(ctx, sheets.AuthConfig{
				ShowURL: func(url string) {
					fmt.Fprintln(out, cli.FormatInfo("Opening your browser to authorize spent."))
					fmt.Fprintf(out, "If it does not open, visit:\n\n  %s\n\n", url)
					a.openURL(url)
				},
				ClientID:     clientID,
				ClientSecret: clientSecret,
				ListenAddr:   listen,
				TokenFile:    tokenPath,
				Timeout:      timeout,
			})
			if err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess("Authentication successful"))

			if save {
				path, err := a.saveRefreshToken(token.RefreshToken)
				if err != nil {
					return fmt.Errorf("failed to save refresh token: %w", err)
				}
				fmt.Fprintf(out, "Saved refresh token to %s\n", path)
				return nil
			}

			fmt.Fprintf(out, "Add this to your config file:\n\nsheets:\n  refresh_token: %q\n\n", token.RefreshToken)
			fmt.Fprintln(out, cli.SubtleStyle.Render("or export SPENT_SHEETS_REFRESH_TOKEN with the same value."))
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID (overrides config)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret (overrides config)")
	cmd.Flags().StringVar(&listen, "listen", "localhost:8080", "address of the local redirect server")
	cmd.Flags().StringVar(&tokenFile, "token-file", "", "where to store the OAuth2 token (default sheets.token_file)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "how long to wait for the browser")
	cmd.Flags().BoolVar(&save, "save", false, "write the refresh token to the config file")

	return cmd
}

// saveRefreshToken writes the token into the config file in use, or the
// default config location when none was read.
func (a *app) saveRefreshToken(refreshToken string) (string, error) {
	path := a.v.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, ".config", "spent", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", err
	}

	a.v.Set("sheets.refresh_token", refreshToken)
	if err := a.v.WriteConfigAs(path); err != nil {
		return "", err
	}
	return path, nil
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux", "freebsd":
		err = exec.Command("xdg-open", url).Start() // #nosec G204 - URL built by the oauth2 library
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() // #nosec G204
	case "darwin":
		err = exec.Command("open", url).Start() // #nosec G204
	}
	if err != nil {
		slog.Debug("failed to open browser", "error", err)
	}
}
