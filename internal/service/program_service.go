package service

import (
	"context"
	"errors"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

var ErrProgramNotFound = errors.New("program not found")

// ProgramDetail is a program with its exercise ids resolved against the
// catalog. Ids that no longer resolve (the exercise was deleted) are simply
// absent from Exercises; dangling references are tolerated, never an error.
type ProgramDetail struct {
	domain.Program
	Exercises []domain.Exercise `json:"exercises"`
}

// ProgramService manages per-patient exercise programs.
type ProgramService interface {
	ListPrograms(ctx context.Context) ([]domain.Program, error)
	ListProgramDetails(ctx context.Context) ([]ProgramDetail, error)
	CreateProgram(ctx context.Context, program domain.Program) (*domain.Program, error)
	UpdateProgram(ctx context.Context, id string, patch repository.ProgramPatch) (*domain.Program, error)
	DeleteProgram(ctx context.Context, id string) error
}

type programService struct {
	programRepo  repository.ProgramRepository
	exerciseRepo repository.ExerciseRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository, exerciseRepo repository.ExerciseRepository) ProgramService {
	return &programService{
		programRepo:  programRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *programService) ListPrograms(ctx context.Context) ([]domain.Program, error) {
	return s.programRepo.List(ctx)
}

// ListProgramDetails returns every program with resolved exercises, skipping
// ids the catalog no longer contains.
func (s *programService) ListProgramDetails(ctx context.Context) ([]ProgramDetail, error) {
	programs, err := s.programRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	details := make([]ProgramDetail, 0, len(programs))
	for _, p := range programs {
		detail := ProgramDetail{Program: p, Exercises: []domain.Exercise{}}
		for _, id := range p.ExerciseIDs {
			if e, ok := byID[id]; ok {
				detail.Exercises = append(detail.Exercises, e)
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

// CreateProgram validates and stores a new program. The patient must exist at
// creation time; exercise ids are accepted as given.
func (s *programService) CreateProgram(ctx context.Context, program domain.Program) (*domain.Program, error) {
	if program.PatientID == "" || len(program.ExerciseIDs) == 0 {
		return nil, ErrValidationFailed
	}

	created, err := s.programRepo.Create(ctx, &program)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return created, nil
}

func (s *programService) UpdateProgram(ctx context.Context, id string, patch repository.ProgramPatch) (*domain.Program, error) {
	if id == "" {
		return nil, ErrValidationFailed
	}
	if patch.ExerciseIDs != nil && len(*patch.ExerciseIDs) == 0 {
		return nil, ErrValidationFailed
	}

	program, err := s.programRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

func (s *programService) DeleteProgram(ctx context.Context, id string) error {
	return s.programRepo.Delete(ctx, id)
}
