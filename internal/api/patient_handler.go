package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
	"physioflow/server/internal/service"
)

// PatientHandler holds the patient service dependency.
type PatientHandler struct {
	patientService service.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patientService service.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// CreatePatientRequest defines the expected JSON for creating a patient.
type CreatePatientRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Notes       string `json:"notes"`
}

// UpdatePatientRequest defines the expected JSON for patching a patient.
// StartDate is server-assigned and not patchable.
type UpdatePatientRequest struct {
	ID          string  `json:"id" binding:"required"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"dateOfBirth"`
	Notes       *string `json:"notes"`
}

// ListPatients returns the full roster in insertion order.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	patients, err := h.patientService.ListPatients(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve patients.")
		return
	}
	if patients == nil {
		patients = []domain.Patient{}
	}
	c.JSON(http.StatusOK, patients)
}

// CreatePatient adds a roster entry and returns it with its generated id and
// start date.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patient, err := h.patientService.CreatePatient(c.Request.Context(), domain.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create patient.")
		}
		return
	}

	c.JSON(http.StatusCreated, patient)
}

// UpdatePatient patches a roster entry by id.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patient, err := h.patientService.UpdatePatient(c.Request.Context(), req.ID, repository.PatientPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Notes:       req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPatientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update patient.")
		}
		return
	}

	c.JSON(http.StatusOK, patient)
}

// DeletePatient removes a patient by the id query parameter, cascading to
// every program assigned to them. Idempotent on the patient id.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		abortWithError(c, http.StatusBadRequest, "ID required")
		return
	}

	if err := h.patientService.DeletePatient(c.Request.Context(), id); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete patient.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
