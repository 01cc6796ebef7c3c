package scope

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/models"
)

const sessionKey = "session"

// SetSession stores the resolved session on the request context.
func SetSession(c *fiber.Ctx, sess *models.Session) {
	c.Locals(sessionKey, sess)
}

// Session returns the session for the current request, or nil when
// the request is unauthenticated.
func Session(c *fiber.Ctx) *models.Session {
	if sess, ok := c.Locals(sessionKey).(*models.Session); ok {
		return sess
	}
	return nil
}
