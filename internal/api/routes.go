package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	patientService service.PatientService,
	programService service.ProgramService,
	therapistService service.TherapistService,
	snapshotService service.SnapshotService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	patientHandler := NewPatientHandler(patientService)
	programHandler := NewProgramHandler(programService)
	therapistHandler := NewTherapistHandler(therapistService)
	adminHandler := NewAdminHandler(snapshotService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminMiddleware := AdminMiddleware(therapistService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Document-store resources ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.PATCH("", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("", exerciseHandler.DeleteExercise)
		}

		patientGroup := protected.Group("/patients")
		{
			patientGroup.GET("", patientHandler.ListPatients)
			patientGroup.POST("", patientHandler.CreatePatient)
			patientGroup.PATCH("", patientHandler.UpdatePatient)
			patientGroup.DELETE("", patientHandler.DeletePatient)
		}

		programGroup := protected.Group("/programs")
		{
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.PATCH("", programHandler.UpdateProgram)
			programGroup.DELETE("", programHandler.DeleteProgram)
		}

		// --- Relational-store resources ---
		// Reads are open to any authenticated user; mutations go through the
		// derived admin gate.
		therapistGroup := protected.Group("/therapists")
		{
			therapistGroup.GET("", therapistHandler.ListTherapists)

			mutations := therapistGroup.Group("")
			mutations.Use(adminMiddleware)
			{
				mutations.POST("", therapistHandler.CreateTherapist)
				mutations.PATCH("", therapistHandler.UpdateTherapist)
				mutations.DELETE("", therapistHandler.DeleteTherapist)
			}
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(adminMiddleware)
		{
			adminGroup.POST("/snapshot", adminHandler.Snapshot)
		}
	}
}
