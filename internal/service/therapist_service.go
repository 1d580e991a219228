package service

import (
	"context"
	"errors"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

var ErrTherapistNotFound = errors.New("therapist not found")

// TherapistService manages the therapist roster and the derived admin
// capability.
type TherapistService interface {
	ListTherapists(ctx context.Context) ([]domain.Therapist, error)
	CreateTherapist(ctx context.Context, therapist domain.Therapist) (*domain.Therapist, error)
	UpdateTherapist(ctx context.Context, id int64, patch repository.TherapistPatch) (*domain.Therapist, error)
	DeleteTherapist(ctx context.Context, id int64) error
	// IsAdmin reports whether the identity with this email is admin: a roster
	// row with the exact email and admin permission must exist. The check is
	// computed against the store on every call; nothing is cached in the
	// session.
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type therapistService struct {
	therapistRepo repository.TherapistRepository
}

// NewTherapistService creates a new instance of therapistService.
func NewTherapistService(therapistRepo repository.TherapistRepository) TherapistService {
	return &therapistService{therapistRepo: therapistRepo}
}

func (s *therapistService) ListTherapists(ctx context.Context) ([]domain.Therapist, error) {
	return s.therapistRepo.List(ctx)
}

func (s *therapistService) CreateTherapist(ctx context.Context, therapist domain.Therapist) (*domain.Therapist, error) {
	if therapist.Email == "" {
		return nil, ErrValidationFailed
	}
	return s.therapistRepo.Create(ctx, &therapist)
}

func (s *therapistService) UpdateTherapist(ctx context.Context, id int64, patch repository.TherapistPatch) (*domain.Therapist, error) {
	if id == 0 {
		return nil, ErrValidationFailed
	}
	if patch.Email != nil && *patch.Email == "" {
		return nil, ErrValidationFailed
	}

	therapist, err := s.therapistRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTherapistNotFound
		}
		return nil, err
	}
	return therapist, nil
}

func (s *therapistService) DeleteTherapist(ctx context.Context, id int64) error {
	if id == 0 {
		return ErrValidationFailed
	}
	err := s.therapistRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTherapistNotFound
		}
		return err
	}
	return nil
}

func (s *therapistService) IsAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	therapists, err := s.therapistRepo.List(ctx)
	if err != nil {
		return false, err
	}
	return domain.IsAdmin(therapists, email), nil
}
