package jsonfile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

// Dates in the data file use the original layout, date only.
const dateLayout = "2006-01-02"

// patientRepository implements repository.PatientRepository over the data file.
type patientRepository struct {
	store *Store
}

// NewPatientRepository creates a Patient repository backed by the data file.
func NewPatientRepository(store *Store) repository.PatientRepository {
	return &patientRepository{store: store}
}

// List returns all patients in stable insertion order.
func (r *patientRepository) List(ctx context.Context) ([]domain.Patient, error) {
	var patients []domain.Patient
	err := r.store.View(ctx, func(doc domain.Document) {
		patients = doc.Patients
	})
	return patients, err
}

// GetByID retrieves a patient by id.
func (r *patientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	var found *domain.Patient
	err := r.store.View(ctx, func(doc domain.Document) {
		for _, p := range doc.Patients {
			if p.ID == id {
				copied := p
				found = &copied
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

// Create appends a new patient with a server-generated id and start date.
func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error) {
	if patient.FirstName == "" {
		return nil, errors.New("patient first name is required")
	}

	patient.ID = uuid.NewString()
	patient.StartDate = time.Now().UTC().Format(dateLayout)

	err := r.store.Mutate(ctx, func(doc *domain.Document) error {
		doc.Patients = append(doc.Patients, *patient)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patient, nil
}

// Update applies a shallow merge of the patch over the stored patient.
// StartDate is immutable and has no patch field.
func (r *patientRepository) Update(ctx context.Context, id string, patch repository.PatientPatch) (*domain.Patient, error) {
	if id == "" {
		return nil, errors.New("patient ID is required for update")
	}

	var updated *domain.Patient
	err := r.store.Mutate(ctx, func(doc *domain.Document) error {
		for i := range doc.Patients {
			if doc.Patients[i].ID != id {
				continue
			}
			p := &doc.Patients[i]
			if patch.FirstName != nil {
				p.FirstName = *patch.FirstName
			}
			if patch.LastName != nil {
				p.LastName = *patch.LastName
			}
			if patch.Email != nil {
				p.Email = *patch.Email
			}
			if patch.Phone != nil {
				p.Phone = *patch.Phone
			}
			if patch.DateOfBirth != nil {
				p.DateOfBirth = *patch.DateOfBirth
			}
			if patch.Notes != nil {
				p.Notes = *patch.Notes
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

// Delete removes the patient and cascades to every program whose PatientID
// matches. Both removals happen inside one Mutate call, so no reader can
// observe the patient gone while its programs remain, or the reverse.
func (r *patientRepository) Delete(ctx context.Context, id string) error {
	return r.store.Mutate(ctx, func(doc *domain.Document) error {
		patients := doc.Patients[:0]
		for _, p := range doc.Patients {
			if p.ID != id {
				patients = append(patients, p)
			}
		}
		doc.Patients = patients

		programs := doc.Programs[:0]
		for _, p := range doc.Programs {
			if p.PatientID != id {
				programs = append(programs, p)
			}
		}
		doc.Programs = programs
		return nil
	})
}
