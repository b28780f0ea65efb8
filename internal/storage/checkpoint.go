package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/spent/internal/ledger"
	"github.com/Veraticus/spent/internal/service"
	"github.com/shopspring/decimal"
)

const (
	snapshotExt = ".ledger"
	metadataExt = ".meta.json"

	maxAutoCheckpoints = 5
)

// Checkpoint errors.
var (
	ErrCheckpointNotFound  = errors.New("checkpoint not found")
	ErrCheckpointCorrupted = errors.New("checkpoint integrity check failed")
	ErrCheckpointExists    = errors.New("checkpoint already exists")
)

// CheckpointManager takes named snapshots of a store and restores them.
// Snapshots are written in the text ledger format whatever the backend.
type CheckpointManager struct {
	store          service.Store
	checkpointsDir string
	backend        string
}

// CheckpointMetadata is persisted next to each snapshot.
type CheckpointMetadata struct {
	CreatedAt   time.Time       `json:"created_at"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Backend     string          `json:"backend"`
	Total       decimal.Decimal `json:"total"`
	FileSize    int64           `json:"file_size"`
	RecordCount int             `json:"record_count"`
	IsAuto      bool            `json:"is_auto"`
}

// CheckpointInfo represents information about a checkpoint for listing.
type CheckpointInfo struct {
	CreatedAt   time.Time
	ID          string
	Description string
	Total       decimal.Decimal
	FileSize    int64
	RecordCount int
	IsAuto      bool
}

// NewCheckpointManager creates a manager keeping snapshots in a
// checkpoints directory beside the store.
func NewCheckpointManager(store service.Store, backend string) (*CheckpointManager, error) {
	checkpointsDir := filepath.Join(filepath.Dir(store.Path()), "checkpoints")
	if err := os.MkdirAll(checkpointsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create checkpoints directory: %w", err)
	}

	if backend == "" {
		backend = BackendFile
	}

	return &CheckpointManager{
		store:          store,
		checkpointsDir: checkpointsDir,
		backend:        backend,
	}, nil
}

// Dir returns the directory holding the snapshots.
func (cm *CheckpointManager) Dir() string {
	return cm.checkpointsDir
}

// Create snapshots the current store contents under tag. An empty tag is
// replaced with a timestamped one.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointInfo, error) {
	return cm.create(ctx, tag, description, false)
}

func (cm *CheckpointManager) create(ctx context.Context, tag, description string, isAuto bool) (*CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", time.Now().Format("2006-01-02-150405"))
	}
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	snapshotPath := cm.snapshotPath(tag)
	if _, err := os.Stat(snapshotPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointExists, tag)
	}

	records, err := cm.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	if err := writeFileAtomic(snapshotPath, func(w io.Writer) error {
		return ledger.Encode(w, records)
	}); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	stat, err := os.Stat(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat checkpoint: %w", err)
	}

	metadata := CheckpointMetadata{
		ID:          tag,
		CreatedAt:   time.Now(),
		Description: description,
		Backend:     cm.backend,
		Total:       ledger.Sum(records),
		FileSize:    stat.Size(),
		RecordCount: len(records),
		IsAuto:      isAuto,
	}

	if err := cm.saveMetadata(tag, metadata); err != nil {
		if rmErr := os.Remove(snapshotPath); rmErr != nil {
			slog.Error("failed to remove checkpoint file after metadata save failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	slog.Info("Created checkpoint", "id", tag, "records", len(records))

	info := metadata.info()
	return &info, nil
}

// List returns all checkpoints, newest first. Unreadable metadata is skipped.
func (cm *CheckpointManager) List(_ context.Context) ([]CheckpointInfo, error) {
	entries, err := os.ReadDir(cm.checkpointsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoints directory: %w", err)
	}

	checkpoints := make([]CheckpointInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), metadataExt) {
			continue
		}

		metadata, err := cm.loadMetadata(strings.TrimSuffix(entry.Name(), metadataExt))
		if err != nil {
			slog.Debug("skipping unreadable checkpoint metadata", "file", entry.Name(), "error", err)
			continue
		}
		checkpoints = append(checkpoints, metadata.info())
	}

	sort.SliceStable(checkpoints, func(i, j int) bool {
		return checkpoints[i].CreatedAt.After(checkpoints[j].CreatedAt)
	})

	return checkpoints, nil
}

// Restore replaces the store contents with the snapshot saved under tag.
func (cm *CheckpointManager) Restore(ctx context.Context, tag string) (*CheckpointInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	metadata, err := cm.loadMetadata(tag)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, tag)
		}
		return nil, fmt.Errorf("failed to load checkpoint metadata: %w", err)
	}

	// #nosec G304 - tag is validated above
	data, err := os.ReadFile(cm.snapshotPath(tag))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, tag)
		}
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	records, err := ledger.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckpointCorrupted, err)
	}
	if len(records) != metadata.RecordCount {
		return nil, fmt.Errorf("%w: expected %d records, found %d", ErrCheckpointCorrupted, metadata.RecordCount, len(records))
	}

	if err := cm.store.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to restore checkpoint: %w", err)
	}

	slog.Info("Restored checkpoint", "id", tag, "records", len(records))

	info := metadata.info()
	return &info, nil
}

// Delete removes a checkpoint and its metadata.
func (cm *CheckpointManager) Delete(_ context.Context, tag string) error {
	if err := validateTag(tag); err != nil {
		return err
	}

	if err := os.Remove(cm.snapshotPath(tag)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrCheckpointNotFound, tag)
		}
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}

	if err := os.Remove(cm.metadataPath(tag)); err != nil {
		slog.Debug("failed to remove metadata file", "error", err, "id", tag)
	}

	return nil
}

// Info returns the metadata of a single checkpoint.
func (cm *CheckpointManager) Info(_ context.Context, tag string) (*CheckpointInfo, error) {
	if err := validateTag(tag); err != nil {
		return nil, err
	}

	metadata, err := cm.loadMetadata(tag)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, tag)
		}
		return nil, fmt.Errorf("failed to load checkpoint metadata: %w", err)
	}

	info := metadata.info()
	return &info, nil
}

// AutoCheckpoint snapshots the store before a bulk operation and prunes
// older automatic checkpoints.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, prefix string) (*CheckpointInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", prefix, time.Now().Format("2006-01-02-150405.000"))
	info, err := cm.create(ctx, tag, fmt.Sprintf("Automatic checkpoint before %s", prefix), true)
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	if err := cm.cleanupOldAutoCheckpoints(ctx); err != nil {
		slog.Warn("failed to clean up old auto-checkpoints", "error", err)
	}

	return info, nil
}

func (cm *CheckpointManager) cleanupOldAutoCheckpoints(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	autoCount := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		autoCount++
		if autoCount > maxAutoCheckpoints {
			if err := cm.Delete(ctx, cp.ID); err != nil {
				slog.Debug("failed to delete old auto-checkpoint during cleanup", "error", err, "checkpoint", cp.ID)
			}
		}
	}

	return nil
}

func (cm *CheckpointManager) snapshotPath(tag string) string {
	return filepath.Join(cm.checkpointsDir, tag+snapshotExt)
}

func (cm *CheckpointManager) metadataPath(tag string) string {
	return filepath.Join(cm.checkpointsDir, tag+metadataExt)
}

func (cm *CheckpointManager) saveMetadata(tag string, metadata CheckpointMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	return writeFileAtomic(cm.metadataPath(tag), func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func (cm *CheckpointManager) loadMetadata(tag string) (*CheckpointMetadata, error) {
	// #nosec G304 - tag is validated by callers or read from the directory listing
	data, err := os.ReadFile(cm.metadataPath(tag))
	if err != nil {
		return nil, err
	}

	var metadata CheckpointMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}

	return &metadata, nil
}

func (m CheckpointMetadata) info() CheckpointInfo {
	return CheckpointInfo{
		ID:          m.ID,
		CreatedAt:   m.CreatedAt,
		Description: m.Description,
		Total:       m.Total,
		FileSize:    m.FileSize,
		RecordCount: m.RecordCount,
		IsAuto:      m.IsAuto,
	}
}
