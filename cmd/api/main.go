package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "luct-reporting/docs" // This is for Swagger
	"luct-reporting/internal/auth"
	"luct-reporting/internal/config"
	"luct-reporting/internal/database"
	"luct-reporting/internal/handlers"
	"luct-reporting/internal/logger"
	"luct-reporting/internal/middleware"
	"luct-reporting/internal/models"
	"luct-reporting/internal/repository"
	"luct-reporting/internal/service"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title LUCT Reporting API
// @version 1.0
// @description Backend API for the LUCT lecture reporting platform

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5001
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	facultyRepo := repository.NewFacultyRepository(db.DB)
	courseRepo := repository.NewCourseRepository(db.DB)
	classRepo := repository.NewClassRepository(db.DB)
	enrollmentRepo := repository.NewEnrollmentRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)
	feedbackRepo := repository.NewFeedbackRepository(db.DB)
	ratingRepo := repository.NewRatingRepository(db.DB)
	gradeRepo := repository.NewGradeRepository(db.DB)
	analyticsRepo := repository.NewAnalyticsRepository(db.DB)

	// Initialize services
	authService := auth.NewService(&cfg.JWT)
	authSvc := service.NewAuthService(userRepo, facultyRepo, authService)
	courseSvc := service.NewCourseService(courseRepo, facultyRepo)
	classSvc := service.NewClassService(classRepo, courseRepo, userRepo)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, classRepo)
	reportSvc := service.NewReportService(reportRepo, feedbackRepo, classRepo)
	ratingSvc := service.NewRatingService(ratingRepo, userRepo)
	gradeSvc := service.NewGradeService(gradeRepo, classRepo, enrollmentRepo)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(authService)
	rbacMw := middleware.NewRBACMiddleware()
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(userRepo, classSvc)
	facultyHandler := handlers.NewFacultyHandler(facultyRepo)
	courseHandler := handlers.NewCourseHandler(courseSvc)
	classHandler := handlers.NewClassHandler(classSvc)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentSvc)
	reportHandler := handlers.NewReportHandler(reportSvc)
	ratingHandler := handlers.NewRatingHandler(ratingSvc)
	gradeHandler := handlers.NewGradeHandler(gradeSvc)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc)

	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/faculties", facultyHandler.List)

	// Authenticated endpoints
	mux.Handle("GET /api/auth/profile", authMw.Authenticate(http.HandlerFunc(authHandler.Profile)))

	mux.Handle("GET /api/users/lecturers",
		authMw.Authenticate(http.HandlerFunc(userHandler.Lecturers)),
	)
	mux.Handle("GET /api/lecturers/{id}/schedule",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleLecturer, models.RolePrincipalLecturer, models.RoleProgramLeader)(
				http.HandlerFunc(userHandler.Schedule),
			),
		),
	)

	mux.Handle("POST /api/faculties",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleProgramLeader)(
				http.HandlerFunc(facultyHandler.Create),
			),
		),
	)

	mux.Handle("GET /api/courses",
		authMw.Authenticate(http.HandlerFunc(courseHandler.List)),
	)
	mux.Handle("POST /api/courses",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleProgramLeader)(
				http.HandlerFunc(courseHandler.Create),
			),
		),
	)

	mux.Handle("GET /api/classes",
		authMw.Authenticate(http.HandlerFunc(classHandler.List)),
	)
	mux.Handle("POST /api/classes",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleProgramLeader, models.RolePrincipalLecturer)(
				http.HandlerFunc(classHandler.Create),
			),
		),
	)
	mux.Handle("GET /api/classes/available",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleStudent)(
				http.HandlerFunc(classHandler.Available),
			),
		),
	)
	mux.Handle("GET /api/classes/{id}/students",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleLecturer, models.RolePrincipalLecturer, models.RoleProgramLeader)(
				http.HandlerFunc(classHandler.Roster),
			),
		),
	)

	mux.Handle("POST /api/enrollments",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleStudent)(
				http.HandlerFunc(enrollmentHandler.Enroll),
			),
		),
	)
	mux.Handle("GET /api/enrollments",
		authMw.Authenticate(http.HandlerFunc(enrollmentHandler.List)),
	)

	mux.Handle("GET /api/reports",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleLecturer, models.RolePrincipalLecturer, models.RoleProgramLeader)(
				http.HandlerFunc(reportHandler.List),
			),
		),
	)
	mux.Handle("POST /api/reports",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleLecturer)(
				http.HandlerFunc(reportHandler.Create),
			),
		),
	)
	mux.Handle("POST /api/reports/{id}/feedback",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RolePrincipalLecturer)(
				http.HandlerFunc(reportHandler.Feedback),
			),
		),
	)
	mux.Handle("DELETE /api/reports/{id}",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RolePrincipalLecturer)(
				http.HandlerFunc(reportHandler.Delete),
			),
		),
	)

	mux.Handle("GET /api/ratings",
		authMw.Authenticate(http.HandlerFunc(ratingHandler.List)),
	)
	mux.Handle("POST /api/ratings",
		authMw.Authenticate(http.HandlerFunc(ratingHandler.Create)),
	)

	mux.Handle("GET /api/grades",
		authMw.Authenticate(http.HandlerFunc(gradeHandler.List)),
	)
	mux.Handle("POST /api/grades",
		authMw.Authenticate(
			rbacMw.RequireRole(models.RoleLecturer)(
				http.HandlerFunc(gradeHandler.Create),
			),
		),
	)

	mux.Handle("GET /api/analytics/dashboard",
		authMw.Authenticate(http.HandlerFunc(analyticsHandler.Dashboard)),
	)
	mux.Handle("GET /api/monitoring/dashboard",
		authMw.Authenticate(http.HandlerFunc(analyticsHandler.Monitoring)),
	)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, err := w.Write([]byte(`{"status":"unhealthy","database":"error"}`)); err != nil {
				slog.Error("Failed to write health check response", "error", err)
			}
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy","version":"` + cfg.App.Version + `"}`)); err != nil {
			slog.Error("Failed to write health check response", "error", err)
		}
	})

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Apply global middleware
	handler := middleware.LoggingMiddleware(
		middleware.SecurityHeaders(
			corsMw.Handler(
				rateLimiter.Limit(mux),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
