package jsonfile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

// programRepository implements repository.ProgramRepository over the data file.
type programRepository struct {
	store *Store
}

// NewProgramRepository creates a Program repository backed by the data file.
func NewProgramRepository(store *Store) repository.ProgramRepository {
	return &programRepository{store: store}
}

// List returns all programs in stable insertion order.
func (r *programRepository) List(ctx context.Context) ([]domain.Program, error) {
	var programs []domain.Program
	err := r.store.View(ctx, func(doc domain.Document) {
		programs = doc.Programs
	})
	return programs, err
}

// Create appends a new program with a server-generated id and start date.
// The referenced patient must exist at creation time; the existence check and
// the append share one Mutate call so the patient cannot be deleted between
// them. Exercise ids are NOT validated.
func (r *programRepository) Create(ctx context.Context, program *domain.Program) (*domain.Program, error) {
	if program.PatientID == "" {
		return nil, errors.New("program patient ID is required")
	}
	if len(program.ExerciseIDs) == 0 {
		return nil, errors.New("program requires at least one exercise ID")
	}

	program.ID = uuid.NewString()
	program.StartDate = time.Now().UTC().Format(dateLayout)

	err := r.store.Mutate(ctx, func(doc *domain.Document) error {
		exists := false
		for _, p := range doc.Patients {
			if p.ID == program.PatientID {
				exists = true
				break
			}
		}
		if !exists {
			return repository.ErrNotFound
		}
		doc.Programs = append(doc.Programs, *program)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return program, nil
}

// Update applies a shallow merge of the patch over the stored program.
// PatientID and StartDate are immutable and have no patch fields.
func (r *programRepository) Update(ctx context.Context, id string, patch repository.ProgramPatch) (*domain.Program, error) {
	if id == "" {
		return nil, errors.New("program ID is required for update")
	}

	var updated *domain.Program
	err := r.store.Mutate(ctx, func(doc *domain.Document) error {
		for i := range doc.Programs {
			if doc.Programs[i].ID != id {
				continue
			}
			p := &doc.Programs[i]
			if patch.ExerciseIDs != nil {
				if len(*patch.ExerciseIDs) == 0 {
					return errors.New("program requires at least one exercise ID")
				}
				p.ExerciseIDs = *patch.ExerciseIDs
			}
			if patch.Frequency != nil {
				p.Frequency = *patch.Frequency
			}
			copied := *p
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

// Delete removes the program with the given id, if present.
func (r *programRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(doc *domain.Document) error {
		kept := doc.Programs[:0]
		for _, p := range doc.Programs {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		doc.Programs = kept
		return nil
	})
}
