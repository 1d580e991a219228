package repository

import (
	"context"

	"physioflow/server/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Patch types enumerate exactly the mutable fields of each entity. A nil
// field means "leave as stored" (shallow merge). Immutable fields — ids,
// Program.PatientID, the server-assigned start dates — have no patch field
// at all, so they cannot be overwritten by an update.

// ExercisePatch is the set of updatable Exercise fields.
type ExercisePatch struct {
	Name         *string
	Category     *string
	Instructions *string
	Reps         *string
	Sets         *string
	Duration     *string
}

// PatientPatch is the set of updatable Patient fields.
type PatientPatch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	DateOfBirth *string
	Notes       *string
}

// ProgramPatch is the set of updatable Program fields. PatientID and
// StartDate are deliberately absent.
type ProgramPatch struct {
	ExerciseIDs *[]string
	Frequency   *string
}

// TherapistPatch is the set of updatable Therapist fields.
type TherapistPatch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Clinic     *string
	Permission *domain.Permission
}

// ExerciseRepository manages the document store's exercise collection.
type ExerciseRepository interface {
	List(ctx context.Context) ([]domain.Exercise, error)
	Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	Update(ctx context.Context, id string, patch ExercisePatch) (*domain.Exercise, error)
	// Delete is idempotent: removing an unknown id succeeds.
	Delete(ctx context.Context, id string) error
}

// PatientRepository manages the document store's patient collection.
type PatientRepository interface {
	List(ctx context.Context) ([]domain.Patient, error)
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
	Update(ctx context.Context, id string, patch PatientPatch) (*domain.Patient, error)
	// Delete removes the patient AND every program whose PatientID matches,
	// in one load-mutate-save cycle. Idempotent on the patient id.
	Delete(ctx context.Context, id string) error
}

// ProgramRepository manages the document store's program collection.
type ProgramRepository interface {
	List(ctx context.Context) ([]domain.Program, error)
	Create(ctx context.Context, program *domain.Program) (*domain.Program, error)
	Update(ctx context.Context, id string, patch ProgramPatch) (*domain.Program, error)
	Delete(ctx context.Context, id string) error
}

// TherapistRepository manages the relational store's therapist roster.
type TherapistRepository interface {
	// List returns the roster ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Therapist, error)
	Create(ctx context.Context, therapist *domain.Therapist) (*domain.Therapist, error)
	Update(ctx context.Context, id int64, patch TherapistPatch) (*domain.Therapist, error)
	// Delete surfaces ErrNotFound for unknown ids; the relational layer can
	// report precise errors, unlike the document-store repositories.
	Delete(ctx context.Context, id int64) error
}

// UserRepository manages authentication identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
