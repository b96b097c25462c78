package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"practicum-service/internal/schedule"
	"practicum-service/internal/service"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// GetSchedule serves the month grid and the filtered list in one response.
// The month query param is "2006-01"; absent means the current month. All
// filter params are optional and default to all.
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	month := time.Now()
	if raw := c.Query("month"); raw != "" {
		month, err = time.Parse("2006-01", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month format, want YYYY-MM"})
		}
	}

	var spec schedule.FilterSpec
	if err := c.QueryParser(&spec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid filter parameters"})
	}

	view, err := h.scheduleService.View(c.Context(), userID, spec, month)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error building schedule view", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build schedule"})
	}

	return c.JSON(view)
}

func (h *ScheduleHandler) GetReport(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	report, err := h.scheduleService.Report(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error building report", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not build report"})
	}

	return c.JSON(report)
}

func (h *ScheduleHandler) GetGroups(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	groups, err := h.scheduleService.Groups(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing groups", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list groups"})
	}

	return c.JSON(fiber.Map{"groups": groups})
}
