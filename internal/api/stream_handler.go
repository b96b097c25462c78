package api

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"practicum-service/internal/events"
	"practicum-service/internal/model"
	"practicum-service/internal/schedule"
	"practicum-service/internal/service"
)

const streamHeartbeat = 30 * time.Second

// StreamHandler pushes live schedule views over SSE. Each connection gets
// its own projector fed by the change-event watcher, so every mutation on
// the account re-renders the view server-side and ships the whole snapshot.
type StreamHandler struct {
	watcher *events.Watcher
}

func NewStreamHandler(watcher *events.Watcher) *StreamHandler {
	return &StreamHandler{watcher: watcher}
}

// StreamSchedule serves GET /v1/schedule/stream. Query params mirror
// GetSchedule; the filter is fixed for the lifetime of the connection.
func (h *StreamHandler) StreamSchedule(c *fiber.Ctx) error {
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

	projector := service.NewScheduleProjector(spec, month)

	// Coalescing signal: a burst of changes collapses into one re-render.
	updates := make(chan struct{}, 1)
	notify := func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	}

	unsubSessions, err := h.watcher.SubscribeSessions(userID, func(sessions []model.Session) {
		projector.ApplySessions(sessions)
		notify()
	})
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Failed to subscribe to session changes", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not open stream"})
	}

	unsubClients, err := h.watcher.SubscribeClients(userID, func(clients []model.Client) {
		projector.ApplyClients(clients)
		notify()
	})
	if err != nil {
		unsubSessions()
		slog.ErrorContext(c.UserContext(), "Failed to subscribe to client changes", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not open stream"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubSessions()
		defer unsubClients()

		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		if err := writeViewEvent(w, projector.CurrentView()); err != nil {
			return
		}

		for {
			select {
			case <-updates:
				if err := writeViewEvent(w, projector.CurrentView()); err != nil {
					return
				}
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

func writeViewEvent(w *bufio.Writer, view schedule.View) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: schedule\ndata: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
