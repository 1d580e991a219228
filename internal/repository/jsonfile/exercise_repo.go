package jsonfile

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

// exerciseRepository implements repository.ExerciseRepository over the data file.
type exerciseRepository struct {
	store *Store
}

// NewExerciseRepository creates an Exercise repository backed by the data file.
func NewExerciseRepository(store *Store) repository.ExerciseRepository {
	return &exerciseRepository{store: store}
}

// List returns all exercises in stable insertion order.
func (r *exerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	err := r.store.View(ctx, func(doc domain.Document) {
		exercises = doc.Exercises
	})
	return exercises, err
}

// Create appends a new exercise with a server-generated id.
func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, errors.New("exercise name is required")
	}

	exercise.ID = uuid.NewString()

	err := r.store.Mutate(ctx, func(doc *domain.Document) error {
		doc.Exercises = append(doc.Exercises, *exercise)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

// Update applies a shallow merge of the patch over the stored exercise.
func (r *exerciseRepository) Update(ctx context.Context, id string, patch repository.ExercisePatch) (*domain.Exercise, error) {
	if id == "" {
		return nil, errors.New("exercise ID is required for update")
	}

	var updated *domain.Exercise
	err := r.store.Mutate(ctx, func(doc *domain.Document) error {
		for i := range doc.Exercises {
			if doc.Exercises[i].ID != id {
				continue
			}
			e := &doc.Exercises[i]
			if patch.Name != nil {
				e.Name = *patch.Name
			}
			if patch.Category != nil {
				e.Category = *patch.Category
			}
			if patch.Instructions != nil {
				e.Instructions = *patch.Instructions
			}
			if patch.Reps != nil {
				e.Reps = *patch.Reps
			}
			if patch.Sets != nil {
				e.Sets = *patch.Sets
			}
			if patch.Duration != nil {
				e.Duration = *patch.Duration
			}
			copied := *e
			updated = &copied
			return nil
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the exercise with the given id, if present. Programs that
// reference the id are left untouched; their dangling ids are tolerated and
// skipped at read time.
func (r *exerciseRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(doc *domain.Document) error {
		kept := doc.Exercises[:0]
		for _, e := range doc.Exercises {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		doc.Exercises = kept
		return nil
	})
}
