package handlers

import (
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/petcare-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	req.Name = sanitize(req.Name)
	req.Surname = sanitize(req.Surname)

	user, err := h.authService.Register(&req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusCreated, "Registration successful", user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, fiber.StatusOK, "Login successful", resp)
}
