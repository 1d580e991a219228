package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"physioflow/server/internal/storage"
)

var ErrSnapshotsDisabled = errors.New("snapshot archiving is not configured")

// SnapshotService archives copies of the practice data file to object
// storage. The whole-file store has no other backup story, so an admin can
// push a timestamped copy out before risky changes.
type SnapshotService interface {
	// Snapshot uploads the current data file and returns the object key.
	Snapshot(ctx context.Context) (string, error)
}

type snapshotService struct {
	dataFilePath  string
	snapshotStore storage.SnapshotStore // nil when archiving is disabled
}

// NewSnapshotService creates a new instance of snapshotService. Pass a nil
// store to disable archiving.
func NewSnapshotService(dataFilePath string, snapshotStore storage.SnapshotStore) SnapshotService {
	return &snapshotService{
		dataFilePath:  dataFilePath,
		snapshotStore: snapshotStore,
	}
}

func (s *snapshotService) Snapshot(ctx context.Context) (string, error) {
	if s.snapshotStore == nil {
		return "", ErrSnapshotsDisabled
	}

	// Reading the file directly (rather than via the store) is safe: saves
	// are atomic renames, so this always sees a complete document. A missing
	// file snapshots as the zero-value it represents.
	data, err := os.ReadFile(s.dataFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}\n")
		} else {
			return "", fmt.Errorf("read data file: %w", err)
		}
	}

	key := fmt.Sprintf("snapshots/data-%s.json", time.Now().UTC().Format("20060102T150405Z"))
	if err := s.snapshotStore.PutSnapshot(ctx, key, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return key, nil
}
