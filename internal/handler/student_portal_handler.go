package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/middleware"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/internal/utils"
)

// StudentPortalHandler wires the student-facing endpoints: the content feed,
// submissions, quiz attempts, grades and attendance history.
type StudentPortalHandler struct {
	feed               service.StudentFeedService
	submissions        service.SubmissionService
	quizSubmissions    service.QuizSubmissionService
	projectSubmissions service.ProjectSubmissionService
	grading            service.GradingService
	attendance         service.AttendanceService
	logger             zerolog.Logger
}

// NewStudentPortalHandler constructs the handler.
func NewStudentPortalHandler(feed service.StudentFeedService, submissions service.SubmissionService, quizSubmissions service.QuizSubmissionService, projectSubmissions service.ProjectSubmissionService, grading service.GradingService, attendance service.AttendanceService, logger zerolog.Logger) *StudentPortalHandler {
	return &StudentPortalHandler{
		feed:               feed,
		submissions:        submissions,
		quizSubmissions:    quizSubmissions,
		projectSubmissions: projectSubmissions,
		grading:            grading,
		attendance:         attendance,
		logger:             logger.With().Str("component", "student_portal_handler").Logger(),
	}
}

// Register attaches student routes to the router group.
func (h *StudentPortalHandler) Register(router fiber.Router) {
	submitLimiter := middleware.RateLimit("student_submit", 20, time.Minute)

	router.Get("/feed", h.getFeed)
	router.Post("/submissions", submitLimiter, h.submitAssignment)
	router.Post("/quizzes/start", submitLimiter, h.startQuiz)
	router.Post("/quizzes/submit", submitLimiter, h.submitQuiz)
	router.Post("/project-submissions", submitLimiter, h.submitProject)
	router.Get("/grades", h.listGrades)
	router.Get("/attendance", h.attendanceHistory)
}

func (h *StudentPortalHandler) getFeed(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	feed, err := h.feed.Feed(c.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build feed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build feed")
	}

	return utils.SendSuccess(c, "feed retrieved", feed)
}

func (h *StudentPortalHandler) submitAssignment(c *fiber.Ctx) error {
	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	studentID := userIDFromContext(c)
	submission, err := h.submissions.Submit(c.Context(), studentID, payload)
	if err != nil {
		return h.mapSubmitError(c, err, "failed to submit assignment")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission received", submission)
}

func (h *StudentPortalHandler) startQuiz(c *fiber.Ctx) error {
	var payload dto.QuizStartRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	studentID := userIDFromContext(c)
	attempt, err := h.quizSubmissions.Start(c.Context(), studentID, payload)
	if err != nil {
		return h.mapSubmitError(c, err, "failed to start quiz")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "quiz started", attempt)
}

func (h *StudentPortalHandler) submitQuiz(c *fiber.Ctx) error {
	var payload dto.QuizSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	studentID := userIDFromContext(c)
	attempt, err := h.quizSubmissions.Submit(c.Context(), studentID, payload)
	if err != nil {
		return h.mapSubmitError(c, err, "failed to submit quiz")
	}

	return utils.SendSuccess(c, "quiz submitted", attempt)
}

func (h *StudentPortalHandler) submitProject(c *fiber.Ctx) error {
	var payload dto.ProjectSubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	studentID := userIDFromContext(c)
	submission, err := h.projectSubmissions.Submit(c.Context(), studentID, payload)
	if err != nil {
		return h.mapSubmitError(c, err, "failed to submit project")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission received", submission)
}

func (h *StudentPortalHandler) listGrades(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	grades, err := h.grading.ListByStudent(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list grades")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list grades")
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *StudentPortalHandler) attendanceHistory(c *fiber.Ctx) error {
	studentID := userIDFromContext(c)
	history, err := h.attendance.StudentHistory(c.Context(), studentID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch attendance history")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch attendance history")
	}

	return utils.SendSuccess(c, "attendance history retrieved", history)
}

// mapSubmitError translates the shared submission error set into HTTP codes.
func (h *StudentPortalHandler) mapSubmitError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrQuizAttemptNotFound),
		errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotEligible):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrQuizAlreadySubmitted):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
