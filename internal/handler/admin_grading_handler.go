package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/internal/utils"
)

// AdminGradingHandler wires the grading endpoints.
type AdminGradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewAdminGradingHandler constructs the handler.
func NewAdminGradingHandler(service service.GradingService, logger zerolog.Logger) *AdminGradingHandler {
	return &AdminGradingHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_grading_handler").Logger(),
	}
}

// Register attaches grading routes to the router group.
func (h *AdminGradingHandler) Register(router fiber.Router) {
	router.Post("/grades", h.grade)
	router.Get("/grades", h.list)
}

func (h *AdminGradingHandler) grade(c *fiber.Ctx) error {
	var payload dto.GradeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	grade, err := h.service.Grade(c.Context(), payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "submission not found")
		case errors.Is(err, service.ErrAlreadyGraded):
			return utils.SendError(c, fiber.StatusConflict, "submission already graded")
		case errors.Is(err, service.ErrQuizNotSubmitted):
			return utils.SendError(c, fiber.StatusConflict, "quiz attempt not submitted yet")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record grade")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record grade")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "grade recorded", grade)
}

func (h *AdminGradingHandler) list(c *fiber.Ctx) error {
	var req dto.GradeListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	grades, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list grades")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list grades")
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}
