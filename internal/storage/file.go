package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/spent/internal/common"
	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/model"
	"github.com/google/uuid"
)

// FileStore keeps the ledger in a plain text file, one expense per line.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path. The file does
// not need to exist yet.
func NewFileStore(path string) (*FileStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Load reads every record from the file. A missing file is an empty ledger.
func (s *FileStore) Load(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from user configuration
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("expense file not found, starting empty", "path", s.path)
		return []model.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open expense file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close expense file", "error", closeErr)
		}
	}()

	records, err := ledger.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrStoreCorrupted, s.path, err)
	}
	if records == nil {
		records = []model.Expense{}
	}
	return records, nil
}

// Save replaces the file contents with records. The new contents are
// written to a temporary file in the same directory and renamed into place.
func (s *FileStore) Save(ctx context.Context, records []model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create expense directory: %w", err)
	}

	return writeFileAtomic(s.path, func(w io.Writer) error {
		return ledger.Encode(w, records)
	})
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}

// writeFileAtomic writes path through a uniquely named sibling file that is
// synced and renamed over the target. The target is untouched on failure.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	// #nosec G304 - tmpPath is derived from the configured store path
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	cleanup := func() {
		if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			slog.Error("failed to remove temporary file", "path", tmpPath, "error", rmErr)
		}
	}

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
