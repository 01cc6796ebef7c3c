package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/scope"
)

// RequireCapability gates a route on the authorization policy. "Not
// logged in" and "not authorized" are reported distinctly so the UI
// can tell the user which one happened.
func RequireCapability(capability authz.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := scope.Session(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Please log in to access this page",
			})
		}
		if !authz.Allowed(authz.Role(sess.RoleName), capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You don't have permission to access this page",
			})
		}
		return c.Next()
	}
}
