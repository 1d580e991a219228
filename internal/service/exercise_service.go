package service

import (
	"context"
	"errors"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ExerciseService manages the exercise catalog.
type ExerciseService interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, id string, patch repository.ExercisePatch) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// CreateExercise validates and stores a new catalog entry. Name is the only
// required field; the rest is free text.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, ErrValidationFailed
	}
	return s.exerciseRepo.Create(ctx, &exercise)
}

func (s *exerciseService) UpdateExercise(ctx context.Context, id string, patch repository.ExercisePatch) (*domain.Exercise, error) {
	if id == "" {
		return nil, ErrValidationFailed
	}
	if patch.Name != nil && *patch.Name == "" {
		return nil, ErrValidationFailed
	}

	exercise, err := s.exerciseRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// DeleteExercise removes a catalog entry. Programs referencing the id keep
// it; readers skip ids that no longer resolve.
func (s *exerciseService) DeleteExercise(ctx context.Context, id string) error {
	return s.exerciseRepo.Delete(ctx, id)
}
