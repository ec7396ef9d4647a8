package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/config"
	"github.com/edubridge/academy-api/internal/database"
	"github.com/edubridge/academy-api/internal/handler"
	"github.com/edubridge/academy-api/internal/middleware"
	"github.com/edubridge/academy-api/internal/models"
	"github.com/edubridge/academy-api/internal/repository"
	"github.com/edubridge/academy-api/internal/router"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/pkg/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Assignment{},
		&models.Quiz{},
		&models.Project{},
		&models.Submission{},
		&models.QuizSubmission{},
		&models.ProjectSubmission{},
		&models.Grade{},
		&models.Attendance{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, dashboard caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, event fan-out over nats disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	publisher := events.New(natsConn, redisClient, cfg.EventChannel, logger)

	profileRepo := repository.NewProfileRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	quizSubmissionRepo := repository.NewQuizSubmissionRepository(db)
	projectSubmissionRepo := repository.NewProjectSubmissionRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	authService := service.NewAuthService(profileRepo, service.AuthConfig{
		Secret:        cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}, validate, logger)
	studentAdminService := service.NewStudentAdminService(profileRepo, validate, activityService, publisher, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, activityService, logger)
	quizService := service.NewQuizService(quizRepo, validate, activityService, logger)
	projectService := service.NewProjectService(projectRepo, validate, activityService, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, profileRepo, validate, publisher, logger)
	quizSubmissionService := service.NewQuizSubmissionService(quizSubmissionRepo, quizRepo, profileRepo, validate, publisher, logger)
	projectSubmissionService := service.NewProjectSubmissionService(projectSubmissionRepo, projectRepo, profileRepo, validate, publisher, logger)
	gradingService := service.NewGradingService(gradeRepo, submissionRepo, quizSubmissionRepo, projectSubmissionRepo, validate, activityService, publisher, logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, profileRepo, validate, activityService, publisher, logger)
	feedService := service.NewStudentFeedService(profileRepo, assignmentRepo, quizRepo, projectRepo, submissionRepo, quizSubmissionRepo, projectSubmissionRepo, gradeRepo, logger)
	dashboardService := service.NewStudentDashboardService(profileRepo, assignmentRepo, quizRepo, projectRepo, submissionRepo, quizSubmissionRepo, projectSubmissionRepo, gradeRepo, attendanceRepo, redisClient, cfg.DashboardCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:             handler.NewAuthHandler(authService, logger),
		AdminStudentHandler:     handler.NewAdminStudentHandler(studentAdminService, logger),
		AdminAssignmentHandler:  handler.NewAdminAssignmentHandler(assignmentService, logger),
		AdminQuizHandler:        handler.NewAdminQuizHandler(quizService, logger),
		AdminProjectHandler:     handler.NewAdminProjectHandler(projectService, logger),
		AdminSubmissionHandler:  handler.NewAdminSubmissionHandler(submissionService, quizSubmissionService, projectSubmissionService, logger),
		AdminGradingHandler:     handler.NewAdminGradingHandler(gradingService, logger),
		AdminAttendanceHandler:  handler.NewAdminAttendanceHandler(attendanceService, logger),
		AdminActivityHandler:    handler.NewAdminActivityHandler(activityService, logger),
		StudentPortalHandler:    handler.NewStudentPortalHandler(feedService, submissionService, quizSubmissionService, projectSubmissionService, gradingService, attendanceService, logger),
		StudentDashboardHandler: handler.NewStudentDashboardHandler(dashboardService, logger),
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
