package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SPENT_STORE_PATH.
const EnvPrefix = "SPENT"

// Default store locations per backend.
const (
	DefaultFilePath   = "~/.local/share/spent/expenses.txt"
	DefaultSQLitePath = "~/.local/share/spent/expenses.db"
)

// SetDefaults registers the default value of every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", storage.BackendFile)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("sheets.spreadsheet_name", "Expenses")
	v.SetDefault("sheets.batch_size", 500)
	v.SetDefault("sheets.retry_attempts", 3)
	v.SetDefault("sheets.formatting", true)
	v.SetDefault("sheets.token_file", DefaultSheetsTokenFile)
}

// Init loads .env from the working directory, then the config file and
// SPENT_ environment variables into v. An explicit cfgFile must exist;
// otherwise a missing config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "spent"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// StoreConfig returns the configured store backend and its expanded path.
func StoreConfig(v *viper.Viper) (storage.Config, error) {
	backend := v.GetString("store.backend")
	path := v.GetString("store.path")

	switch backend {
	case storage.BackendFile:
		if path == "" {
			path = DefaultFilePath
		}
	case storage.BackendSQLite:
		if path == "" {
			path = DefaultSQLitePath
		}
	default:
		return storage.Config{}, fmt.Errorf("%w: %q", common.ErrUnknownBackend, backend)
	}

	return storage.Config{
		Backend: backend,
		Path:    ExpandPath(path),
	}, nil
}
