package jsonfile

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

func TestExerciseCreateAndList(t *testing.T) {
	store := newTestStore(t)
	repo := NewExerciseRepository(store)

	created, err := repo.Create(context.Background(), &domain.Exercise{
		Name:     "Chin tuck",
		Category: "Neck",
		Reps:     "10",
		Sets:     "3",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("created exercise must have a non-empty id")
	}

	exercises, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 1 || exercises[0] != *created {
		t.Errorf("listed %+v, want %+v", exercises, *created)
	}
}

func TestExerciseCreateRequiresName(t *testing.T) {
	store := newTestStore(t)
	repo := NewExerciseRepository(store)

	if _, err := repo.Create(context.Background(), &domain.Exercise{Category: "Back"}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestExerciseListKeepsInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	repo := NewExerciseRepository(store)

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		if _, err := repo.Create(context.Background(), &domain.Exercise{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	exercises, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(exercises))
	for i, e := range exercises {
		got[i] = e.Name
	}
	if !reflect.DeepEqual(got, names) {
		t.Errorf("order = %v, want %v", got, names)
	}
}

func TestExerciseUpdateShallowMerge(t *testing.T) {
	store := newTestStore(t)
	repo := NewExerciseRepository(store)

	created, err := repo.Create(context.Background(), &domain.Exercise{
		Name:     "Bridge",
		Category: "Back",
		Duration: "5 min",
	})
	if err != nil {
		t.Fatal(err)
	}

	reps := "12"
	updated, err := repo.Update(context.Background(), created.ID, repository.ExercisePatch{Reps: &reps})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Reps != "12" {
		t.Errorf("Reps = %q, want 12", updated.Reps)
	}
	if updated.Name != "Bridge" || updated.Category != "Back" || updated.Duration != "5 min" {
		t.Errorf("absent fields were not preserved: %+v", updated)
	}
}

func TestExerciseUpdateUnknownIDIsNotFound(t *testing.T) {
	store := newTestStore(t)
	repo := NewExerciseRepository(store)

	name := "X"
	_, err := repo.Update(context.Background(), "nope", repository.ExercisePatch{Name: &name})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExerciseDeleteLeavesReferencingProgramsAlone(t *testing.T) {
	store := newTestStore(t)
	exercises := NewExerciseRepository(store)
	patients := NewPatientRepository(store)
	programs := NewProgramRepository(store)

	exercise, err := exercises.Create(context.Background(), &domain.Exercise{Name: "Bridge"})
	if err != nil {
		t.Fatal(err)
	}
	patient, err := patients.Create(context.Background(), &domain.Patient{FirstName: "Ana"})
	if err != nil {
		t.Fatal(err)
	}
	program, err := programs.Create(context.Background(), &domain.Program{
		PatientID:   patient.ID,
		ExerciseIDs: []string{exercise.ID},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := exercises.Delete(context.Background(), exercise.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// No cascade: the program keeps its (now dangling) exercise id.
	remaining, err := programs.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 {
		t.Fatalf("program list changed: %+v", remaining)
	}
	if !reflect.DeepEqual(remaining[0].ExerciseIDs, program.ExerciseIDs) {
		t.Errorf("program exercise ids changed: %v, want %v", remaining[0].ExerciseIDs, program.ExerciseIDs)
	}
}

func TestExerciseDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	repo := NewExerciseRepository(store)

	if err := repo.Delete(context.Background(), "never-existed"); err != nil {
		t.Errorf("deleting an unknown id must succeed, got %v", err)
	}
}
