package api

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"practicum-service/internal/schedule"
	"practicum-service/internal/service"
)

type ClientHandler struct {
	clientService service.ClientService
	validate      *validator.Validate
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		validate:      validator.New(),
	}
}

type ClientRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Group string `json:"group,omitempty" validate:"max=50"`
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request ClientRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	created, err := h.clientService.Create(c.Context(), userID, request.Name, request.Group)
	if err != nil {
		return clientError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListClients returns the user's clients in picker order: grouped first by
// group then name, ungrouped last.
func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	clients, err := h.clientService.List(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error listing clients", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not list clients"})
	}

	return c.JSON(schedule.SortClients(clients))
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	userID, clientID, ok := clientParams(c)
	if !ok {
		return nil
	}

	var request ClientRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if err := h.clientService.Update(c.Context(), userID, clientID, request.Name, request.Group); err != nil {
		return clientError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	userID, clientID, ok := clientParams(c)
	if !ok {
		return nil
	}

	if err := h.clientService.Delete(c.Context(), userID, clientID); err != nil {
		return clientError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func clientParams(c *fiber.Ctx) (userID, clientID uuid.UUID, ok bool) {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
		return uuid.Nil, uuid.Nil, false
	}

	clientID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client ID format"})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, clientID, true
}

func clientError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrClientNameRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.ErrorContext(c.UserContext(), "Client operation failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
