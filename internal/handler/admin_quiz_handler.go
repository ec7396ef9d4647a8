package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/internal/utils"
)

// AdminQuizHandler wires admin quiz endpoints.
type AdminQuizHandler struct {
	service service.QuizService
	logger  zerolog.Logger
}

// NewAdminQuizHandler constructs the handler.
func NewAdminQuizHandler(service service.QuizService, logger zerolog.Logger) *AdminQuizHandler {
	return &AdminQuizHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_quiz_handler").Logger(),
	}
}

// Register attaches quiz admin routes to the router group.
func (h *AdminQuizHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminQuizHandler) list(c *fiber.Ctx) error {
	quizzes, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list quizzes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list quizzes")
	}

	return utils.SendSuccess(c, "quizzes retrieved", quizzes)
}

func (h *AdminQuizHandler) create(c *fiber.Ctx) error {
	var payload dto.QuizCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	quiz, err := h.service.Create(c.Context(), payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDueDate):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create quiz")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create quiz")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "quiz created", quiz)
}

func (h *AdminQuizHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	quiz, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch quiz")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch quiz")
	}

	return utils.SendSuccess(c, "quiz retrieved", quiz)
}

func (h *AdminQuizHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.QuizUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	quiz, err := h.service.Update(c.Context(), id, payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
		case errors.Is(err, service.ErrInvalidDueDate):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update quiz")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update quiz")
		}
	}

	return utils.SendSuccess(c, "quiz updated", quiz)
}

func (h *AdminQuizHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := activityActorFromContext(c)
	if err := h.service.Delete(c.Context(), id, actor); err != nil {
		if errors.Is(err, service.ErrQuizNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete quiz")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete quiz")
	}

	return utils.SendSuccess(c, "quiz deleted", fiber.Map{"id": id})
}
