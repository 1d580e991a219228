package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
	"physioflow/server/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Instructions string `json:"instructions"`
	Reps         string `json:"reps"`
	Sets         string `json:"sets"`
	Duration     string `json:"duration"`
}

// UpdateExerciseRequest defines the expected JSON for patching an exercise.
// Absent fields are preserved; the id itself is not patchable.
type UpdateExerciseRequest struct {
	ID           string  `json:"id" binding:"required"`
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Instructions *string `json:"instructions"`
	Reps         *string `json:"reps"`
	Sets         *string `json:"sets"`
	Duration     *string `json:"duration"`
}

// ListExercises returns the full catalog in insertion order.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise adds a catalog entry and returns it with its generated id.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), domain.Exercise{
		Name:         req.Name,
		Category:     req.Category,
		Instructions: req.Instructions,
		Reps:         req.Reps,
		Sets:         req.Sets,
		Duration:     req.Duration,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

// UpdateExercise patches a catalog entry by id.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), req.ID, repository.ExercisePatch{
		Name:         req.Name,
		Category:     req.Category,
		Instructions: req.Instructions,
		Reps:         req.Reps,
		Sets:         req.Sets,
		Duration:     req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise removes a catalog entry by the id query parameter.
// Idempotent: deleting an unknown id still reports success.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		abortWithError(c, http.StatusBadRequest, "ID required")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), id); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
