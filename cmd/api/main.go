package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"placement-cell-backend/config"
	v1 "placement-cell-backend/internal/delivery/http/v1"
	"placement-cell-backend/internal/repository/mongodb"
	"placement-cell-backend/internal/usecase"
	"placement-cell-backend/pkg/blobstore"
	"placement-cell-backend/pkg/database"
	"placement-cell-backend/pkg/googleauth"
	"placement-cell-backend/pkg/logger"
	"placement-cell-backend/pkg/redis"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	logger.Init()
	logger.Log.Info("Starting placement cell backend", "port", cfg.Port)

	ctx := context.Background()

	mongoClient, db, err := database.NewMongoConnection(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Log.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer func() { _ = redis.Close() }()

	blobs, err := blobstore.New(ctx, blobstore.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		Bucket:          cfg.MediaBucket,
	})
	if err != nil {
		logger.Log.Error("Failed to initialize media store", "error", err)
		os.Exit(1)
	}

	google := googleauth.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL)
	if !google.IsConfigured() {
		logger.Log.Warn("Google OAuth not configured - logins will be unavailable")
	}

	adminRepo := mongodb.NewAdminRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	studentRepo := mongodb.NewStudentRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	tx := mongodb.NewTxRunner(mongoClient)

	validate := validator.New()
	authUC := usecase.NewAuthUsecase(adminRepo, companyRepo, studentRepo, cfg.JWTSecret, cfg.StudentEmailDomain)
	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo, studentRepo, applicationRepo, blobs, tx)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, studentRepo)
	studentUC := usecase.NewStudentUsecase(studentRepo, applicationRepo, blobs, tx, validate)
	companyUC := usecase.NewCompanyUsecase(companyRepo, validate)
	adminUC := usecase.NewAdminUsecase(companyRepo, jobRepo, applicationRepo, studentRepo, tx)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		StudentUC:     studentUC,
		CompanyUC:     companyUC,
		AdminUC:       adminUC,
		Google:        google,
		Config:        cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
