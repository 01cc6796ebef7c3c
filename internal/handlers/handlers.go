package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/models"
	"github.com/sorofreja/playerdev-backend/internal/scope"
)

// storageError logs the underlying failure and returns a generic
// message. The technical detail rides along only for admin callers.
func storageError(c *fiber.Ctx, action string, err error) error {
	sess := scope.Session(c)
	username := ""
	if sess != nil {
		username = sess.Username
	}
	slog.Error("storage operation failed", "action", action, "error", err, "username", username)

	resp := dto.ErrorResponse{Error: true, Message: "Operation failed, please try again"}
	if sess != nil && authz.Role(sess.RoleName) == authz.RoleAdmin {
		resp.Detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func userResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
