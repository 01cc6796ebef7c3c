package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/scope"
	"github.com/sorofreja/playerdev-backend/internal/services"
)

// SessionRequired resolves the server-side session for the presented
// token and stores it on the request context. A valid token whose
// session was logged out is rejected.
func SessionRequired(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Current(BearerToken(c))
		if err != nil {
			slog.Error("session lookup failed", "error", err, "path", c.Path())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Operation failed, please try again",
			})
		}
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Please log in to access this page",
			})
		}
		scope.SetSession(c, sess)
		return c.Next()
	}
}
