package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/edubridge/academy-api/internal/config"
	"github.com/edubridge/academy-api/internal/handler"
	"github.com/edubridge/academy-api/internal/middleware"
	"github.com/edubridge/academy-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler             *handler.AuthHandler
	AdminStudentHandler     *handler.AdminStudentHandler
	AdminAssignmentHandler  *handler.AdminAssignmentHandler
	AdminQuizHandler        *handler.AdminQuizHandler
	AdminProjectHandler     *handler.AdminProjectHandler
	AdminSubmissionHandler  *handler.AdminSubmissionHandler
	AdminGradingHandler     *handler.AdminGradingHandler
	AdminAttendanceHandler  *handler.AdminAttendanceHandler
	AdminActivityHandler    *handler.AdminActivityHandler
	StudentPortalHandler    *handler.StudentPortalHandler
	StudentDashboardHandler *handler.StudentDashboardHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole("admin"))
	if deps.AdminStudentHandler != nil {
		deps.AdminStudentHandler.Register(admin.Group("/students"))
	}
	if deps.AdminAssignmentHandler != nil {
		deps.AdminAssignmentHandler.Register(admin.Group("/assignments"))
	}
	if deps.AdminQuizHandler != nil {
		deps.AdminQuizHandler.Register(admin.Group("/quizzes"))
	}
	if deps.AdminProjectHandler != nil {
		deps.AdminProjectHandler.Register(admin.Group("/projects"))
	}
	if deps.AdminSubmissionHandler != nil {
		deps.AdminSubmissionHandler.Register(admin)
	}
	if deps.AdminGradingHandler != nil {
		deps.AdminGradingHandler.Register(admin)
	}
	if deps.AdminAttendanceHandler != nil {
		deps.AdminAttendanceHandler.Register(admin)
	}
	if deps.AdminActivityHandler != nil {
		deps.AdminActivityHandler.Register(admin)
	}

	student := api.Group("/student", jwtMiddleware, middleware.RequireRole("student"))
	if deps.StudentPortalHandler != nil {
		deps.StudentPortalHandler.Register(student)
	}
	if deps.StudentDashboardHandler != nil {
		deps.StudentDashboardHandler.Register(student)
	}
}
