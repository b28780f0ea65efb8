package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Veraticus/spent/internal/sheets"
	"github.com/spf13/viper"
)

// DefaultSheetsTokenFile is where "spent auth sheets" stores its token.
const DefaultSheetsTokenFile = "~/.config/spent/sheets-token.json"

// LoadSheetsConfig loads Google Sheets settings. Values come from the config
// file or SPENT_SHEETS_* variables first, then the GOOGLE_SHEETS_* variables
// shared with other tools. Without a service account or refresh token, the
// refresh token saved in sheets.token_file is used.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	config.ServiceAccountPath = ExpandPath(FirstNonEmpty(
		v.GetString("sheets.service_account_path"),
		os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"),
	))
	config.ClientID = FirstNonEmpty(v.GetString("sheets.client_id"), os.Getenv("GOOGLE_SHEETS_CLIENT_ID"))
	config.ClientSecret = FirstNonEmpty(v.GetString("sheets.client_secret"), os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"))
	config.RefreshToken = FirstNonEmpty(v.GetString("sheets.refresh_token"), os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN"))
	config.SpreadsheetID = FirstNonEmpty(v.GetString("sheets.spreadsheet_id"), os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))

	if config.RefreshToken == "" && config.ServiceAccountPath == "" {
		refreshToken, err := savedRefreshToken(ExpandPath(v.GetString("sheets.token_file")))
		if err != nil {
			return nil, err
		}
		config.RefreshToken = refreshToken
	}

	config.SpreadsheetName = FirstNonEmpty(
		v.GetString("sheets.spreadsheet_name"),
		os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME"),
		config.SpreadsheetName,
	)
	if tz := v.GetString("sheets.time_zone"); tz != "" {
		config.TimeZone = tz
	}
	if v.IsSet("sheets.batch_size") {
		config.BatchSize = v.GetInt("sheets.batch_size")
	}
	if v.IsSet("sheets.retry_attempts") {
		config.RetryAttempts = v.GetInt("sheets.retry_attempts")
	}
	if v.IsSet("sheets.formatting") {
		config.EnableFormatting = v.GetBool("sheets.formatting")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// savedRefreshToken reads the refresh token from a token file. A missing
// file yields no token.
func savedRefreshToken(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	token, err := sheets.LoadToken(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file %s: %w", path, err)
	}
	return token.RefreshToken, nil
}

// FirstNonEmpty returns the first non-empty value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
