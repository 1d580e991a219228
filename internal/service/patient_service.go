package service

import (
	"context"
	"errors"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

var ErrPatientNotFound = errors.New("patient not found")

// PatientService manages the patient roster.
type PatientService interface {
	ListPatients(ctx context.Context) ([]domain.Patient, error)
	CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error)
	UpdatePatient(ctx context.Context, id string, patch repository.PatientPatch) (*domain.Patient, error)
	DeletePatient(ctx context.Context, id string) error
}

type patientService struct {
	patientRepo repository.PatientRepository
}

// NewPatientService creates a new instance of patientService.
func NewPatientService(patientRepo repository.PatientRepository) PatientService {
	return &patientService{patientRepo: patientRepo}
}

func (s *patientService) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return s.patientRepo.List(ctx)
}

// CreatePatient validates and stores a new roster entry. FirstName is the
// only required field; StartDate is assigned by the repository.
func (s *patientService) CreatePatient(ctx context.Context, patient domain.Patient) (*domain.Patient, error) {
	if patient.FirstName == "" {
		return nil, ErrValidationFailed
	}
	return s.patientRepo.Create(ctx, &patient)
}

func (s *patientService) UpdatePatient(ctx context.Context, id string, patch repository.PatientPatch) (*domain.Patient, error) {
	if id == "" {
		return nil, ErrValidationFailed
	}
	if patch.FirstName != nil && *patch.FirstName == "" {
		return nil, ErrValidationFailed
	}

	patient, err := s.patientRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// DeletePatient removes a patient and, through the repository, every program
// assigned to them in the same write. Idempotent on the patient id.
func (s *patientService) DeletePatient(ctx context.Context, id string) error {
	return s.patientRepo.Delete(ctx, id)
}
