package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/scope"
	"github.com/sorofreja/playerdev-backend/internal/services"
)

// AdminHandler covers user management, the approval workflow, and the
// impersonation toggle. All routes behind it require the manage_users
// or impersonate capability.
type AdminHandler struct {
	users    *services.UserService
	sessions *services.SessionService
}

func NewAdminHandler(users *services.UserService, sessions *services.SessionService) *AdminHandler {
	return &AdminHandler{users: users, sessions: sessions}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers()
	if err != nil {
		return storageError(c, "list_users", err)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	return c.JSON(resp)
}

// CreateUser creates an active account. Admin accounts are only made
// by the startup bootstrap, not through this endpoint.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	role := authz.Role(req.Role)
	if !role.SelfRegisterable() {
		return badRequest(c, "Role must be one of coach, assistant_coach, observer")
	}

	user, err := h.users.CreateUser(req.Username, req.Password, req.Email, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrWeakPassword), errors.Is(err, services.ErrUnknownRole):
			return badRequest(c, err.Error())
		}
		return storageError(c, "create_user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

func (h *AdminHandler) PendingUsers(c *fiber.Ctx) error {
	users, err := h.users.PendingUsers()
	if err != nil {
		return storageError(c, "list_pending_users", err)
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	return c.JSON(resp)
}

func (h *AdminHandler) ApproveUser(c *fiber.Ctx) error {
	username := c.Params("username")
	ok, err := h.users.ApproveUser(username)
	if err != nil {
		return storageError(c, "approve_user", err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No pending user with that username",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "User approved"})
}

func (h *AdminHandler) RejectUser(c *fiber.Ctx) error {
	username := c.Params("username")
	ok, err := h.users.RejectUser(username)
	if err != nil {
		return storageError(c, "reject_user", err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No pending user with that username",
		})
	}
	return c.JSON(dto.MessageResponse{Message: "Registration rejected"})
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	username := c.Params("username")
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var role *authz.Role
	if req.Role != nil {
		r := authz.Role(*req.Role)
		if !r.Valid() {
			return badRequest(c, "Unknown role")
		}
		role = &r
	}

	err := h.users.UpdateUser(username, req.Email, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrWeakPassword),
			errors.Is(err, services.ErrUnknownRole):
			return badRequest(c, err.Error())
		}
		return storageError(c, "update_user", err)
	}
	return c.JSON(dto.MessageResponse{Message: "User updated"})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	err := h.users.DeleteUser(username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrAdminProtected):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin accounts cannot be deleted",
			})
		}
		return storageError(c, "delete_user", err)
	}
	return c.JSON(dto.MessageResponse{Message: "User deleted"})
}

// Impersonate switches the admin's acting data scope to another user.
func (h *AdminHandler) Impersonate(c *fiber.Ctx) error {
	var req dto.ImpersonateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sess := scope.Session(c)
	err := h.sessions.Impersonate(sess, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrNotPermitted):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You don't have permission to access this page",
			})
		}
		return storageError(c, "impersonate", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Now acting as " + req.Username})
}

func (h *AdminHandler) StopImpersonating(c *fiber.Ctx) error {
	if err := h.sessions.StopImpersonating(scope.Session(c)); err != nil {
		return storageError(c, "stop_impersonating", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Back to your own data"})
}
