package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/config"
	"github.com/Veraticus/spent/internal/engine"
	"github.com/Veraticus/spent/internal/model"
	"github.com/Veraticus/spent/internal/service"
	"github.com/Veraticus/spent/internal/storage"
)

// openStore opens the configured store backend.
func (a *app) openStore(ctx context.Context) (service.Store, storage.Config, error) {
	cfg, err := config.StoreConfig(a.v)
	if err != nil {
		return nil, cfg, common.NewUserError("check store.backend in your config", err)
	}

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to open store %s: %w", cfg.Path, err)
	}
	return store, cfg, nil
}

// withEngine opens the store, loads the ledger and runs fn. The store is
// closed afterwards.
func (a *app) withEngine(ctx context.Context, fn func(*engine.Engine) error) error {
	store, _, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Warn("failed to close store", "error", closeErr)
		}
	}()

	eng, err := engine.Open(ctx, store)
	if err != nil {
		return err
	}
	return fn(eng)
}

// withCheckpoints opens the store and its checkpoint manager and runs fn.
func (a *app) withCheckpoints(ctx context.Context, fn func(*storage.CheckpointManager) error) error {
	store, cfg, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			a.logger.Warn("failed to close store", "error", closeErr)
		}
	}()

	manager, err := storage.NewCheckpointManager(store, cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint manager: %w", err)
	}
	return fn(manager)
}

// normalizeCategory maps user input onto the fixed category set,
// ignoring case.
func normalizeCategory(raw string) (string, error) {
	if raw == "" || model.Category(raw).IsKnown() {
		return raw, nil
	}
	for _, c := range model.Categories() {
		if strings.EqualFold(raw, string(c)) {
			return string(c), nil
		}
	}
	return "", common.NewUserError(
		fmt.Sprintf("unknown category %q (choose one of %s)", raw, joinNames(model.Categories())), nil)
}

// normalizePayment maps user input onto the fixed payment method set,
// ignoring case.
func normalizePayment(raw string) (string, error) {
	if raw == "" || model.PaymentMethod(raw).IsKnown() {
		return raw, nil
	}
	for _, p := range model.PaymentMethods() {
		if strings.EqualFold(raw, string(p)) {
			return string(p), nil
		}
	}
	return "", common.NewUserError(
		fmt.Sprintf("unknown payment method %q (choose one of %s)", raw, joinNames(model.PaymentMethods())), nil)
}

func joinNames[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour") + " ago"
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
	return t.Format("2006-01-02 15:04")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
