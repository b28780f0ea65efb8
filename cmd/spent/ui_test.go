package main

import (
	"testing"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/tui"
	"github.com/Veraticus/spent/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uiConfig(opts []tui.Option) tui.Config {
	var cfg tui.Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestUI(t *testing.T) {
	tests := []struct {
		env         string
		name        string
		wantPrimary string
		args        []string
		wantAlt     bool
	}{
		{
			name:        "defaults",
			wantPrimary: string(themes.Default.Primary),
			wantAlt:     true,
		},
		{
			name:        "theme flag",
			args:        []string{"--theme", "Ocean", "--inline"},
			wantPrimary: string(themes.Ocean.Primary),
		},
		{
			name:        "theme from environment",
			env:         "mono",
			wantPrimary: string(themes.Mono.Primary),
			wantAlt:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.env != "" {
				t.Setenv("SPENT_UI_THEME", tt.env)
			}

			h.mustRun(append([]string{"ui"}, tt.args...)...)

			require.Equal(t, 1, h.uiCalls)
			cfg := uiConfig(h.uiOptions)
			assert.Equal(t, tt.wantPrimary, string(cfg.Theme.Primary))
			assert.Equal(t, tt.wantAlt, cfg.AltScreen)
			require.NotNil(t, cfg.Now)
			assert.Equal(t, testNow, cfg.Now())
		})
	}
}

func TestUIUnknownTheme(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "ui", "--theme", "neon")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "default, mono, ocean")
	assert.Zero(t, h.uiCalls)
}
