package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/internal/utils"
)

// AdminProjectHandler wires admin project endpoints.
type AdminProjectHandler struct {
	service service.ProjectService
	logger  zerolog.Logger
}

// NewAdminProjectHandler constructs the handler.
func NewAdminProjectHandler(service service.ProjectService, logger zerolog.Logger) *AdminProjectHandler {
	return &AdminProjectHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_project_handler").Logger(),
	}
}

// Register attaches project admin routes to the router group.
func (h *AdminProjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AdminProjectHandler) list(c *fiber.Ctx) error {
	projects, err := h.service.List(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list projects")
	}

	return utils.SendSuccess(c, "projects retrieved", projects)
}

func (h *AdminProjectHandler) create(c *fiber.Ctx) error {
	var payload dto.ProjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	project, err := h.service.Create(c.Context(), payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDueDate):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create project")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create project")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project created", project)
}

func (h *AdminProjectHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	project, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch project")
	}

	return utils.SendSuccess(c, "project retrieved", project)
}

func (h *AdminProjectHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ProjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	project, err := h.service.Update(c.Context(), id, payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		case errors.Is(err, service.ErrInvalidDueDate):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update project")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update project")
		}
	}

	return utils.SendSuccess(c, "project updated", project)
}

func (h *AdminProjectHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := activityActorFromContext(c)
	if err := h.service.Delete(c.Context(), id, actor); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete project")
	}

	return utils.SendSuccess(c, "project deleted", fiber.Map{"id": id})
}
