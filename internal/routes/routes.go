package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/config"
	"github.com/sorofreja/playerdev-backend/internal/handlers"
	"github.com/sorofreja/playerdev-backend/internal/middleware"
	"github.com/sorofreja/playerdev-backend/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sessions *services.SessionService,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	rosterHandler *handlers.RosterHandler,
	matchHandler *handlers.MatchHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Everything below requires a verified token and a live session.
	protected := api.Group("", middleware.JWTProtected(cfg, sessions), middleware.SessionRequired(sessions))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Roster — add/delete players (admin, coach)
	roster := protected.Group("/players")
	roster.Get("/", middleware.RequireCapability(authz.ViewAnalysis), rosterHandler.ListPlayers)
	roster.Post("/", middleware.RequireCapability(authz.ManageRoster), rosterHandler.AddPlayer)
	roster.Delete("/:name", middleware.RequireCapability(authz.ManageRoster), rosterHandler.DeletePlayer)

	// Match data — record ratings (admin, coach, assistant_coach)
	protected.Post("/matches", middleware.RequireCapability(authz.RecordMatch), matchHandler.RecordMatch)

	// Analysis — all roles
	analysis := protected.Group("", middleware.RequireCapability(authz.ViewAnalysis))
	analysis.Get("/players/:name/performance", matchHandler.PlayerPerformance)
	analysis.Get("/team/performance", matchHandler.TeamPerformance)
	analysis.Get("/seasons", matchHandler.Seasons)

	// Admin — user management and impersonation
	admin := protected.Group("/admin", middleware.RequireCapability(authz.ManageUsers))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users/pending", adminHandler.PendingUsers)
	admin.Post("/users/:username/approve", adminHandler.ApproveUser)
	admin.Post("/users/:username/reject", adminHandler.RejectUser)
	admin.Put("/users/:username", adminHandler.UpdateUser)
	admin.Delete("/users/:username", adminHandler.DeleteUser)
	admin.Put("/impersonate", adminHandler.Impersonate)
	admin.Delete("/impersonate", adminHandler.StopImpersonating)
}
