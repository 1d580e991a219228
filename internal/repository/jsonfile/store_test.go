package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"physioflow/server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "data.json"))
}

func TestViewMissingFileYieldsZeroDocument(t *testing.T) {
	store := newTestStore(t)

	var doc domain.Document
	err := store.View(context.Background(), func(d domain.Document) { doc = d })
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	if doc.Exercises == nil || doc.Patients == nil || doc.Programs == nil || doc.Compliance == nil {
		t.Fatal("zero-value document must have all four collections non-nil")
	}
	if len(doc.Exercises)+len(doc.Patients)+len(doc.Programs)+len(doc.Compliance) != 0 {
		t.Fatal("zero-value document must be empty")
	}
}

func TestViewCorruptFileYieldsZeroDocument(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := store.View(context.Background(), func(d domain.Document) {
		if len(d.Exercises) != 0 || len(d.Patients) != 0 {
			t.Error("corrupt file should read as the zero-value document")
		}
	})
	if err != nil {
		t.Fatalf("View must not fail on a corrupt file: %v", err)
	}
}

func TestMutatePersistsAndRoundTrips(t *testing.T) {
	store := newTestStore(t)

	err := store.Mutate(context.Background(), func(doc *domain.Document) error {
		doc.Exercises = append(doc.Exercises, domain.Exercise{ID: "e1", Name: "Neck stretch"})
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	// A fresh store on the same path sees the write.
	reopened := NewStore(store.Path())
	err = reopened.View(context.Background(), func(doc domain.Document) {
		if len(doc.Exercises) != 1 || doc.Exercises[0].Name != "Neck stretch" {
			t.Errorf("unexpected exercises after reopen: %+v", doc.Exercises)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestMutateErrorDiscardsChanges(t *testing.T) {
	store := newTestStore(t)
	seedExercise(t, store, domain.Exercise{ID: "e1", Name: "Original"})

	wantErr := os.ErrInvalid
	err := store.Mutate(context.Background(), func(doc *domain.Document) error {
		doc.Exercises[0].Name = "Changed"
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Mutate error = %v, want %v", err, wantErr)
	}

	err = store.View(context.Background(), func(doc domain.Document) {
		if doc.Exercises[0].Name != "Original" {
			t.Error("a failed mutation must not be persisted")
		}
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestMutatePreservesCompliance(t *testing.T) {
	store := newTestStore(t)
	seed := `{"exercises":[],"patients":[],"programs":[],"compliance":[{"week":1,"done":true}]}`
	if err := os.WriteFile(store.Path(), []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	err := store.Mutate(context.Background(), func(doc *domain.Document) error {
		doc.Exercises = append(doc.Exercises, domain.Exercise{ID: "e1", Name: "Bridge"})
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("data file is not valid JSON: %v", err)
	}
	var compliance []map[string]any
	if err := json.Unmarshal(raw["compliance"], &compliance); err != nil {
		t.Fatal(err)
	}
	if len(compliance) != 1 || compliance[0]["week"] != float64(1) {
		t.Errorf("compliance entries must pass through writes untouched, got %v", compliance)
	}
}

func TestSaveWritesAllFourKeys(t *testing.T) {
	store := newTestStore(t)
	if err := store.Mutate(context.Background(), func(*domain.Document) error { return nil }); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"exercises", "patients", "programs", "compliance"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("data file missing top-level key %q", key)
		}
	}
}

func TestConcurrentMutationsDoNotLoseUpdates(t *testing.T) {
	store := newTestStore(t)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Mutate(context.Background(), func(doc *domain.Document) error {
				doc.Exercises = append(doc.Exercises, domain.Exercise{ID: "x", Name: "x"})
				return nil
			})
			if err != nil {
				t.Errorf("Mutate: %v", err)
			}
		}()
	}
	wg.Wait()

	err := store.View(context.Background(), func(doc domain.Document) {
		if len(doc.Exercises) != writers {
			t.Errorf("got %d exercises after %d concurrent creates, lost updates", len(doc.Exercises), writers)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestMutateRespectsContextCancellation(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Mutate(ctx, func(doc *domain.Document) error {
		t.Error("mutation must not run on a cancelled context")
		return nil
	})
	if err == nil {
		t.Fatal("expected context error")
	}
}

func seedExercise(t *testing.T, store *Store, e domain.Exercise) {
	t.Helper()
	err := store.Mutate(context.Background(), func(doc *domain.Document) error {
		doc.Exercises = append(doc.Exercises, e)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
