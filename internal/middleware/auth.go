package middleware

import (
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/config"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/services"
)

// JWTProtected rejects requests without a valid signed token. A token
// that fails verification also destroys its server-side session, so a
// session is force-logged-out at the first access after expiry.
func JWTProtected(cfg *config.Config, sessions *services.SessionService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if raw := BearerToken(c); raw != "" {
				sessions.Invalidate(raw)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Please log in to access this page",
			})
		},
	})
}

// BearerToken returns the raw token from the Authorization header, or
// "" when absent.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
