package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"physioflow/server/internal/api"
	"physioflow/server/internal/config"
	"physioflow/server/internal/repository/jsonfile"
	"physioflow/server/internal/repository/postgres"
	"physioflow/server/internal/service"
	"physioflow/server/internal/storage"
)

func main() {
	log.Println("Starting PhysioFlow Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Relational store ---
	pool, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to PostgreSQL: %v", err)
	}
	defer func() {
		log.Println("Closing PostgreSQL pool...")
		pool.Close()
	}()
	log.Println("Database connection established.")

	// --- Document store ---
	// One store owns the data file for the life of the process; all
	// document-backed repositories share it so mutations serialize.
	if dir := filepath.Dir(cfg.DataFile.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("FATAL: Could not create data directory: %v", err)
		}
	}
	store := jsonfile.NewStore(cfg.DataFile.Path)
	log.Printf("Document store at %s", store.Path())

	// --- Snapshot archiving (optional) ---
	var snapshotStore storage.SnapshotStore
	if cfg.S3.SnapshotsEnabled() {
		log.Println("Initializing snapshot store...")
		snapshotStore, err = storage.NewS3SnapshotStore(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 snapshot store: %v", err)
		}
	} else {
		log.Println("Snapshot archiving disabled (no bucket configured).")
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	exerciseRepo := jsonfile.NewExerciseRepository(store)
	patientRepo := jsonfile.NewPatientRepository(store)
	programRepo := jsonfile.NewProgramRepository(store)
	therapistRepo := postgres.NewTherapistRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	patientService := service.NewPatientService(patientRepo)
	programService := service.NewProgramService(programRepo, exerciseRepo)
	therapistService := service.NewTherapistService(therapistRepo)
	snapshotService := service.NewSnapshotService(cfg.DataFile.Path, snapshotStore)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, exerciseService, patientService, programService,
		therapistService, snapshotService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
