package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
	"physioflow/server/internal/service"
)

// TherapistHandler holds the therapist service dependency.
type TherapistHandler struct {
	therapistService service.TherapistService
}

// NewTherapistHandler creates a new TherapistHandler.
func NewTherapistHandler(therapistService service.TherapistService) *TherapistHandler {
	return &TherapistHandler{therapistService: therapistService}
}

// CreateTherapistRequest defines the expected JSON for adding a roster row.
type CreateTherapistRequest struct {
	FirstName  string            `json:"firstName"`
	LastName   string            `json:"lastName"`
	Email      string            `json:"email" binding:"required,email"`
	Clinic     string            `json:"clinic"`
	Permission domain.Permission `json:"permission" binding:"omitempty,oneof=therapist admin"`
}

// UpdateTherapistRequest defines the expected JSON for patching a roster
// row. The id is required; the relational layer reports a missing row as an
// explicit error rather than swallowing it.
type UpdateTherapistRequest struct {
	ID         int64              `json:"id" binding:"required"`
	FirstName  *string            `json:"firstName"`
	LastName   *string            `json:"lastName"`
	Email      *string            `json:"email"`
	Clinic     *string            `json:"clinic"`
	Permission *domain.Permission `json:"permission" binding:"omitempty,oneof=therapist admin"`
}

// ListTherapists returns the roster, newest first.
func (h *TherapistHandler) ListTherapists(c *gin.Context) {
	therapists, err := h.therapistService.ListTherapists(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve therapists.")
		return
	}
	c.JSON(http.StatusOK, therapists)
}

// CreateTherapist inserts a roster row and returns it.
func (h *TherapistHandler) CreateTherapist(c *gin.Context) {
	var req CreateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	therapist, err := h.therapistService.CreateTherapist(c.Request.Context(), domain.Therapist{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Clinic:     req.Clinic,
		Permission: req.Permission,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create therapist.")
		}
		return
	}

	c.JSON(http.StatusCreated, therapist)
}

// UpdateTherapist patches a roster row by the id in the request body.
func (h *TherapistHandler) UpdateTherapist(c *gin.Context) {
	var req UpdateTherapistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "ID required")
		return
	}

	therapist, err := h.therapistService.UpdateTherapist(c.Request.Context(), req.ID, repository.TherapistPatch{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Clinic:     req.Clinic,
		Permission: req.Permission,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTherapistNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update therapist.")
		}
		return
	}

	c.JSON(http.StatusOK, therapist)
}

// DeleteTherapist removes a roster row by the id query parameter. Unlike the
// document-store resources this is NOT idempotent: a missing row is 404.
func (h *TherapistHandler) DeleteTherapist(c *gin.Context) {
	id, err := parseIDParam(c.Query("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "ID required")
		return
	}

	if err := h.therapistService.DeleteTherapist(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTherapistNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete therapist.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func parseIDParam(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("missing id")
	}
	return strconv.ParseInt(raw, 10, 64)
}
