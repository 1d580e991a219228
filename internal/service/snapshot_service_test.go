package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type stubSnapshotStore struct {
	putErr   error
	lastKey  string
	lastBody string
}

func (s *stubSnapshotStore) PutSnapshot(_ context.Context, objectKey string, body io.Reader) error {
	s.lastKey = objectKey
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.lastBody = string(data)
	return s.putErr
}

func TestSnapshotUploadsDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	content := `{"exercises":[],"patients":[],"programs":[],"compliance":[]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &stubSnapshotStore{}
	svc := NewSnapshotService(path, store)

	key, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if key == "" || key != store.lastKey {
		t.Errorf("key = %q, store saw %q", key, store.lastKey)
	}
	if !strings.HasPrefix(key, "snapshots/data-") {
		t.Errorf("unexpected key layout: %q", key)
	}
	if store.lastBody != content {
		t.Errorf("uploaded body differs from data file")
	}
}

func TestSnapshotDisabled(t *testing.T) {
	svc := NewSnapshotService("unused", nil)

	_, err := svc.Snapshot(context.Background())
	if !errors.Is(err, ErrSnapshotsDisabled) {
		t.Errorf("err = %v, want ErrSnapshotsDisabled", err)
	}
}

func TestSnapshotMissingFileUploadsPlaceholder(t *testing.T) {
	store := &stubSnapshotStore{}
	svc := NewSnapshotService(filepath.Join(t.TempDir(), "missing.json"), store)

	if _, err := svc.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if store.lastBody == "" {
		t.Error("missing data file should still snapshot a placeholder document")
	}
}
