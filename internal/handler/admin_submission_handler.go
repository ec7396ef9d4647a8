package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/internal/utils"
)

// AdminSubmissionHandler exposes the submission review lists for all three
// content kinds.
type AdminSubmissionHandler struct {
	submissions        service.SubmissionService
	quizSubmissions    service.QuizSubmissionService
	projectSubmissions service.ProjectSubmissionService
	logger             zerolog.Logger
}

// NewAdminSubmissionHandler constructs the handler.
func NewAdminSubmissionHandler(submissions service.SubmissionService, quizSubmissions service.QuizSubmissionService, projectSubmissions service.ProjectSubmissionService, logger zerolog.Logger) *AdminSubmissionHandler {
	return &AdminSubmissionHandler{
		submissions:        submissions,
		quizSubmissions:    quizSubmissions,
		projectSubmissions: projectSubmissions,
		logger:             logger.With().Str("component", "admin_submission_handler").Logger(),
	}
}

// Register attaches submission review routes to the router group.
func (h *AdminSubmissionHandler) Register(router fiber.Router) {
	router.Get("/submissions", h.listAssignmentSubmissions)
	router.Get("/quiz-submissions", h.listQuizSubmissions)
	router.Get("/project-submissions", h.listProjectSubmissions)
}

func (h *AdminSubmissionHandler) listAssignmentSubmissions(c *fiber.Ctx) error {
	var req dto.SubmissionListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	submissions, err := h.submissions.List(c.Context(), req)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list submissions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list submissions")
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *AdminSubmissionHandler) listQuizSubmissions(c *fiber.Ctx) error {
	var req dto.QuizSubmissionListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	attempts, err := h.quizSubmissions.List(c.Context(), req)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list quiz attempts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list quiz attempts")
	}

	return utils.SendSuccess(c, "quiz attempts retrieved", attempts)
}

func (h *AdminSubmissionHandler) listProjectSubmissions(c *fiber.Ctx) error {
	var req dto.ProjectSubmissionListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	submissions, err := h.projectSubmissions.List(c.Context(), req)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list project submissions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list project submissions")
	}

	return utils.SendSuccess(c, "project submissions retrieved", submissions)
}
