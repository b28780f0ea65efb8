package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/spent/internal/service"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/Veraticus/spent/internal/tui"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// harness runs the root command against a store in a temporary directory
// with every external collaborator replaced.
type harness struct {
	t         *testing.T
	dir       string
	storePath string

	sheetsWriter *sheets.MockWriter
	sheetsCfg    *sheets.Config
	authCfg      *sheets.AuthConfig
	openedURLs   []string
	uiCalls      int
	uiOptions    []tui.Option
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"SPENT_STORE_PATH", "SPENT_STORE_BACKEND",
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET", "GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(key, "")
	}

	return &harness{
		t:            t,
		dir:          dir,
		storePath:    filepath.Join(dir, "expenses.txt"),
		sheetsWriter: sheets.NewMockWriter(),
	}
}

func (h *harness) newApp() *app {
	a := newApp()
	a.now = func() time.Time { return testNow }
	a.newSheetsWriter = func(_ context.Context, cfg sheets.Config, _ *slog.Logger) (service.ReportWriter, error) {
		h.sheetsCfg = &cfg
		return h.sheetsWriter, nil
	}
	a.authorize = func(_ context.Context, cfg sheets.AuthConfig) (*oauth2.Token, error) {
		h.authCfg = &cfg
		cfg.ShowURL("https://accounts.example.com/auth")
		token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh-123"}
		return token, sheets.SaveToken(cfg.TokenFile, token)
	}
	a.openURL = func(url string) { h.openedURLs = append(h.openedURLs, url) }
	a.runUI = func(_ context.Context, _ tui.Ledger, opts ...tui.Option) error {
		h.uiCalls++
		h.uiOptions = opts
		return nil
	}
	return a
}

// run executes spent with args and stdin, returning stdout.
func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	return h.runContext(context.Background(), stdin, args...)
}

// runContext is run under ctx.
func (h *harness) runContext(ctx context.Context, stdin string, args ...string) (string, error) {
	h.t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(h.newApp())
	cmd.SetArgs(append([]string{"--store", h.storePath}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), err
}

// mustRun is run for commands expected to succeed.
func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, "spent %s\n%s", strings.Join(args, " "), out)
	return out
}

func (h *harness) storeContents() string {
	h.t.Helper()
	data, err := os.ReadFile(h.storePath)
	require.NoError(h.t, err)
	return string(data)
}

func (h *harness) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0600))
	return path
}
