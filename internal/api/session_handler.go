package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"practicum-service/internal/model"
	"practicum-service/internal/service"
)

type SessionHandler struct {
	sessionService service.SessionService
	validate       *validator.Validate
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		validate:       validator.New(),
	}
}

type CreateSessionRequest struct {
	Type     string    `json:"type" validate:"required,oneof=individual group"`
	ClientID uuid.UUID `json:"client_id" validate:"required"`
	Duration int       `json:"duration" validate:"min=0"`
	Date     time.Time `json:"date" validate:"required"`
	Status   string    `json:"status" validate:"required,oneof=planned completed"`
	Memo     *string   `json:"memo,omitempty" validate:"omitempty,max=500"`
}

// UpdateSessionRequest carries a partial edit. Absent fields are left as
// they are; clear_memo removes the memo.
type UpdateSessionRequest struct {
	Type      *string    `json:"type,omitempty" validate:"omitempty,oneof=individual group"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
	Duration  *int       `json:"duration,omitempty" validate:"omitempty,min=0"`
	Date      *time.Time `json:"date,omitempty"`
	Status    *string    `json:"status,omitempty" validate:"omitempty,oneof=planned completed"`
	Memo      *string    `json:"memo,omitempty" validate:"omitempty,max=500"`
	ClearMemo bool       `json:"clear_memo,omitempty"`
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request CreateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	created, err := h.sessionService.Create(c.Context(), userID, service.CreateSessionInput{
		Type:     model.SessionType(request.Type),
		ClientID: request.ClientID,
		Duration: request.Duration,
		Date:     request.Date,
		Status:   model.SessionStatus(request.Status),
		Memo:     request.Memo,
	})
	if err != nil {
		return sessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	sessions, err := h.sessionService.List(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing sessions", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list sessions"})
	}

	return c.JSON(sessions)
}

func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	userID, sessionID, ok := sessionParams(c)
	if !ok {
		return nil
	}

	var request UpdateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	in := service.EditSessionInput{
		ClientID:  request.ClientID,
		Duration:  request.Duration,
		Date:      request.Date,
		Memo:      request.Memo,
		ClearMemo: request.ClearMemo,
	}
	if request.Type != nil {
		t := model.SessionType(*request.Type)
		in.Type = &t
	}
	if request.Status != nil {
		s := model.SessionStatus(*request.Status)
		in.Status = &s
	}

	if err := h.sessionService.Edit(c.Context(), userID, sessionID, in); err != nil {
		return sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) CompleteSession(c *fiber.Ctx) error {
	userID, sessionID, ok := sessionParams(c)
	if !ok {
		return nil
	}

	if err := h.sessionService.Complete(c.Context(), userID, sessionID, time.Now()); err != nil {
		return sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) ReopenSession(c *fiber.Ctx) error {
	userID, sessionID, ok := sessionParams(c)
	if !ok {
		return nil
	}

	if err := h.sessionService.Reopen(c.Context(), userID, sessionID); err != nil {
		return sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type SetIndexedRequest struct {
	Indexed bool `json:"indexed"`
}

func (h *SessionHandler) SetIndexed(c *fiber.Ctx) error {
	userID, sessionID, ok := sessionParams(c)
	if !ok {
		return nil
	}

	var request SetIndexedRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.sessionService.SetIndexed(c.Context(), userID, sessionID, request.Indexed); err != nil {
		return sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	userID, sessionID, ok := sessionParams(c)
	if !ok {
		return nil
	}

	if err := h.sessionService.Delete(c.Context(), userID, sessionID); err != nil {
		return sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// sessionParams reads the caller identity and the :id path param, writing
// the error response itself when either is bad.
func sessionParams(c *fiber.Ctx) (userID, sessionID uuid.UUID, ok bool) {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, sessionID, true
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrPlannedNeedsDuration):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrTransitionNotAllowed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.ErrorContext(c.UserContext(), "Session operation failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
