package api

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"practicum-service/internal/model"
	"practicum-service/internal/service"
)

type ProfileHandler struct {
	profileService service.ProfileService
	validate       *validator.Validate
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validate:       validator.New(),
	}
}

type UpdateProfileRequest struct {
	Name           string `json:"name" validate:"max=100"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"max=30"`
	Institution    string `json:"institution" validate:"max=200"`
	StudentID      string `json:"student_id" validate:"max=50"`
	IndividualGoal int    `json:"individual_goal" validate:"min=0"`
	GroupGoal      int    `json:"group_goal" validate:"min=0"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error loading profile", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load profile"})
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user claims"})
	}

	var request UpdateProfileRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	profile := &model.UserProfile{
		UserID:         userID,
		Name:           request.Name,
		Email:          request.Email,
		Phone:          request.Phone,
		Institution:    request.Institution,
		StudentID:      request.StudentID,
		IndividualGoal: request.IndividualGoal,
		GroupGoal:      request.GroupGoal,
	}
	if err := h.profileService.Update(c.Context(), profile); err != nil {
		slog.ErrorContext(c.UserContext(), "Error saving profile", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save profile"})
	}

	return c.JSON(profile)
}
