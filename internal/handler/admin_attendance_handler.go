package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edubridge/academy-api/internal/dto"
	"github.com/edubridge/academy-api/internal/service"
	"github.com/edubridge/academy-api/internal/utils"
)

// AdminAttendanceHandler wires the attendance sheet endpoints.
type AdminAttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAdminAttendanceHandler constructs the handler.
func NewAdminAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AdminAttendanceHandler {
	return &AdminAttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_attendance_handler").Logger(),
	}
}

// Register attaches attendance routes to the router group.
func (h *AdminAttendanceHandler) Register(router fiber.Router) {
	router.Post("/attendance", h.mark)
	router.Get("/attendance", h.roster)
	router.Get("/students/:id/attendance", h.studentHistory)
}

func (h *AdminAttendanceHandler) mark(c *fiber.Ctx) error {
	var payload dto.AttendanceMarkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := activityActorFromContext(c)
	record, err := h.service.Mark(c.Context(), payload, actor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to mark attendance")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to mark attendance")
		}
	}

	return utils.SendSuccess(c, "attendance marked", record)
}

// roster serves the sheet for a single date; defaults to today when no date
// query parameter is supplied.
func (h *AdminAttendanceHandler) roster(c *fiber.Ctx) error {
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	roster, err := h.service.Roster(c.Context(), date)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build attendance roster")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build attendance roster")
	}

	return utils.SendSuccess(c, "attendance roster retrieved", roster)
}

func (h *AdminAttendanceHandler) studentHistory(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	history, err := h.service.StudentHistory(c.Context(), id)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch attendance history")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch attendance history")
	}

	return utils.SendSuccess(c, "attendance history retrieved", history)
}
