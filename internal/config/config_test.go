package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/sheets"
	"github.com/Veraticus/spent/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SPENT_TEST_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/expenses.txt", want: filepath.Join(home, "expenses.txt")},
		{in: "$SPENT_TEST_DIR/expenses.txt", want: "/data/expenses.txt"},
		{in: "/abs/path", want: "/abs/path"},
		{in: "relative/~/path", want: "relative/~/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestInit_ConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
store:
  backend: sqlite
  path: /tmp/spent-test/expenses.db
logging:
  level: debug
`), 0600))

	v := viper.New()
	require.NoError(t, Init(v, cfgPath))

	assert.Equal(t, "debug", v.GetString("logging.level"))
	assert.Equal(t, "console", v.GetString("logging.format"))

	cfg, err := StoreConfig(v)
	require.NoError(t, err)
	assert.Equal(t, storage.Config{Backend: storage.BackendSQLite, Path: "/tmp/spent-test/expenses.db"}, cfg)
}

func TestInit_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	err := Init(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInit_EnvOverridesAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SPENT_STORE_BACKEND", "")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SPENT_STORE_PATH=/from/dotenv/expenses.txt\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("SPENT_STORE_PATH") })

	v := viper.New()
	require.NoError(t, Init(v, ""))

	cfg, err := StoreConfig(v)
	require.NoError(t, err)
	assert.Equal(t, storage.BackendFile, cfg.Backend)
	assert.Equal(t, "/from/dotenv/expenses.txt", cfg.Path)
}

func TestStoreConfig_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	v := viper.New()
	SetDefaults(v)

	cfg, err := StoreConfig(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/spent/expenses.txt"), cfg.Path)

	v.Set("store.backend", "sqlite")
	cfg, err = StoreConfig(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local/share/spent/expenses.db"), cfg.Path)

	v.Set("store.backend", "csv")
	_, err = StoreConfig(v)
	assert.ErrorIs(t, err, common.ErrUnknownBackend)
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

	v := viper.New()
	SetDefaults(v)
	v.Set("sheets.refresh_token", "cfg-token")
	v.Set("sheets.client_id", "cfg-client")
	v.Set("sheets.batch_size", 50)

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "cfg-client", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Equal(t, "cfg-token", cfg.RefreshToken)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, "Expenses", cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_TokenFile(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "id")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
	home := t.TempDir()
	t.Setenv("HOME", home)

	newViper := func() *viper.Viper {
		v := viper.New()
		SetDefaults(v)
		return v
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSheetsConfig(newViper())
		assert.ErrorIs(t, err, sheets.ErrNoAuth)
	})

	tokenPath := filepath.Join(home, ".config", "spent", "sheets-token.json")
	require.NoError(t, sheets.SaveToken(tokenPath, &oauth2.Token{RefreshToken: "from-file"}))

	t.Run("default location", func(t *testing.T) {
		cfg, err := LoadSheetsConfig(newViper())
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.RefreshToken)
	})

	t.Run("configured token wins", func(t *testing.T) {
		v := newViper()
		v.Set("sheets.refresh_token", "from-config")
		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "from-config", cfg.RefreshToken)
	})

	t.Run("service account skips the file", func(t *testing.T) {
		v := newViper()
		v.Set("sheets.service_account_path", "/keys/sa.json")
		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Empty(t, cfg.RefreshToken)
	})

	t.Run("unreadable file", func(t *testing.T) {
		bad := filepath.Join(home, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0600))
		v := newViper()
		v.Set("sheets.token_file", bad)
		_, err := LoadSheetsConfig(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), bad)
	})
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "b", "c"))
	assert.Empty(t, FirstNonEmpty("", ""))
	assert.Empty(t, FirstNonEmpty())
}

func TestLoadSheetsConfig_NoAuth(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
	} {
		t.Setenv(key, "")
	}

	_, err := LoadSheetsConfig(viper.New())
	assert.ErrorIs(t, err, sheets.ErrNoAuth)
}
