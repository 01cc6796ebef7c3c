package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/middleware"
	"github.com/sorofreja/playerdev-backend/internal/scope"
	"github.com/sorofreja/playerdev-backend/internal/services"
)

type AuthHandler struct {
	users    *services.UserService
	sessions *services.SessionService
}

func NewAuthHandler(users *services.UserService, sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// Register handles public self-registration. Accounts land pending and
// cannot log in until an admin approves them.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	role := authz.Role(req.Role)
	if !role.SelfRegisterable() {
		return badRequest(c, "Role must be one of coach, assistant_coach, observer")
	}

	user, err := h.users.RegisterUser(req.Username, req.Password, req.Email, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrWeakPassword), errors.Is(err, services.ErrUnknownRole):
			return badRequest(c, err.Error())
		}
		return storageError(c, "register_user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration received, awaiting admin approval",
		"user":    userResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	_, raw, err := h.sessions.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid username or password",
			})
		}
		return storageError(c, "login", err)
	}

	user, err := h.users.ByUsername(req.Username)
	if err != nil {
		return storageError(c, "login", err)
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: raw,
		User:        userResponse(user),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(middleware.BearerToken(c)); err != nil {
		return storageError(c, "logout", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

// Me reports the authenticated identity and the acting data scope.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := scope.Session(c)
	return c.JSON(dto.SessionResponse{
		UserID:       sess.UserID,
		Username:     sess.Username,
		Role:         sess.RoleName,
		ActingUserID: sess.ActingUserID(),
		Impersonated: sess.ImpersonatedUserID,
	})
}
