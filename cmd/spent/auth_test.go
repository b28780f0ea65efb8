package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/spent/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthSheets(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("auth", "sheets", "--client-id", "id", "--client-secret", "secret", "--listen", "localhost:9999")

	assert.Contains(t, out, "https://accounts.example.com/auth")
	assert.Contains(t, out, "Authentication successful")
	assert.Contains(t, out, `refresh_token: "refresh-123"`)
	assert.Equal(t, []string{"https://accounts.example.com/auth"}, h.openedURLs)

	require.NotNil(t, h.authCfg)
	assert.Equal(t, "id", h.authCfg.ClientID)
	assert.Equal(t, "secret", h.authCfg.ClientSecret)
	assert.Equal(t, "localhost:9999", h.authCfg.ListenAddr)
	assert.Equal(t, 5*time.Minute, h.authCfg.Timeout)
	assert.Equal(t, filepath.Join(h.dir, ".config", "spent", "sheets-token.json"), h.authCfg.TokenFile)
}

func TestAuthSheetsUsesEnvironment(t *testing.T) {
	h := newHarness(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")

	h.mustRun("auth", "sheets")

	require.NotNil(t, h.authCfg)
	assert.Equal(t, "env-id", h.authCfg.ClientID)
	assert.Equal(t, "env-secret", h.authCfg.ClientSecret)
}

func TestAuthSheetsSave(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("auth", "sheets", "--client-id", "id", "--client-secret", "secret", "--save")

	configPath := filepath.Join(h.dir, ".config", "spent", "config.yaml")
	assert.Contains(t, out, "Saved refresh token to "+configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "refresh-123")
}

func TestAuthSheetsMissingCredentials(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "auth", "sheets")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
	assert.Nil(t, h.authCfg)
}
