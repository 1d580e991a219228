package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"physioflow/server/internal/domain"
)

// Store is the gateway to the practice data file. One Store is created at
// startup and shared by every document-backed repository; it owns the file
// for the life of the process.
//
// The file has no transactional guarantee of its own, so the Store enforces a
// single-writer policy: every mutation runs load → mutate → save under one
// mutex, and save goes through a temp file plus rename so a crash mid-write
// never leaves a torn document behind.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store for the data file at path. The file does not need
// to exist yet; a missing file reads as the zero-value document.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the data file.
func (s *Store) Path() string {
	return s.path
}

// View runs fn against a snapshot of the document. Load fails soft: a
// missing, unreadable or malformed file yields the zero-value document rather
// than an error, so read paths never fail on persistence problems.
func (s *Store) View(ctx context.Context, fn func(doc domain.Document)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.load())
	return nil
}

// Mutate runs fn against the current document and persists the result. The
// whole cycle holds the store mutex, so concurrent mutations serialize
// instead of racing load-modify-save and losing each other's writes.
//
// Unlike load, save fails hard: if the write cannot complete the error
// propagates and the mutation must not be assumed persisted.
func (s *Store) Mutate(ctx context.Context, fn func(doc *domain.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if err := fn(&doc); err != nil {
		return err
	}
	return s.save(doc)
}

// load reads and decodes the data file. Callers must hold s.mu.
func (s *Store) load() domain.Document {
	doc := domain.NewDocument()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		// Availability over correctness: a corrupt file must not take
		// request handling down with it.
		return domain.NewDocument()
	}

	// Missing keys decode to nil; normalize so every save writes all four
	// collections back out.
	if doc.Exercises == nil {
		doc.Exercises = []domain.Exercise{}
	}
	if doc.Patients == nil {
		doc.Patients = []domain.Patient{}
	}
	if doc.Programs == nil {
		doc.Programs = []domain.Program{}
	}
	if doc.Compliance == nil {
		doc.Compliance = []json.RawMessage{}
	}
	return doc
}

// save writes the document atomically: encode to a temp file in the same
// directory, then rename over the target. Callers must hold s.mu.
func (s *Store) save(doc domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close data file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod data file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
