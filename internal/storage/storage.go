package storage

import (
	"context"
	"io"
)

// SnapshotStore defines the interface for archiving data-file snapshots to
// object storage.
type SnapshotStore interface {
	// PutSnapshot uploads one snapshot under the given object key.
	PutSnapshot(ctx context.Context, objectKey string, body io.Reader) error
}
