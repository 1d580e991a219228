package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
	"physioflow/server/internal/service"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// CreateProgramRequest defines the expected JSON for creating a program.
// The patient must exist; the exercise ids are taken as given.
type CreateProgramRequest struct {
	PatientID   string   `json:"patientId" binding:"required"`
	ExerciseIDs []string `json:"exerciseIds" binding:"required,min=1"`
	Frequency   string   `json:"frequency"`
}

// UpdateProgramRequest defines the expected JSON for patching a program.
// PatientID and StartDate are immutable and not patchable.
type UpdateProgramRequest struct {
	ID          string    `json:"id" binding:"required"`
	ExerciseIDs *[]string `json:"exerciseIds"`
	Frequency   *string   `json:"frequency"`
}

// ListPrograms returns all programs. With ?expand=exercises each program
// carries its resolved exercise objects; ids the catalog no longer contains
// are skipped without error.
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	if c.Query("expand") == "exercises" {
		details, err := h.programService.ListProgramDetails(c.Request.Context())
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
			return
		}
		c.JSON(http.StatusOK, details)
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve programs.")
		return
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	c.JSON(http.StatusOK, programs)
}

// CreateProgram adds a program and returns it with its generated id and
// start date.
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), domain.Program{
		PatientID:   req.PatientID,
		ExerciseIDs: req.ExerciseIDs,
		Frequency:   req.Frequency,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPatientNotFound):
			abortWithError(c, http.StatusBadRequest, "Program references an unknown patient.")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create program.")
		}
		return
	}

	c.JSON(http.StatusCreated, program)
}

// UpdateProgram patches a program by id.
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), req.ID, repository.ProgramPatch{
		ExerciseIDs: req.ExerciseIDs,
		Frequency:   req.Frequency,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update program.")
		}
		return
	}

	c.JSON(http.StatusOK, program)
}

// DeleteProgram removes a program by the id query parameter. Idempotent.
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		abortWithError(c, http.StatusBadRequest, "ID required")
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), id); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete program.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
