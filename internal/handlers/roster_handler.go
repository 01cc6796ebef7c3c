package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/scope"
	"github.com/sorofreja/playerdev-backend/internal/services"
)

type RosterHandler struct {
	roster *services.RosterService
}

func NewRosterHandler(roster *services.RosterService) *RosterHandler {
	return &RosterHandler{roster: roster}
}

func (h *RosterHandler) ListPlayers(c *fiber.Ctx) error {
	owner := scope.Session(c).ActingUserID()
	players, err := h.roster.Players(owner)
	if err != nil {
		return storageError(c, "list_players", err)
	}

	resp := make([]dto.PlayerResponse, 0, len(players))
	for _, p := range players {
		resp = append(resp, dto.PlayerResponse{Name: p.Name, Position: p.Position})
	}
	return c.JSON(resp)
}

func (h *RosterHandler) AddPlayer(c *fiber.Ctx) error {
	var req dto.AddPlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return badRequest(c, "Player name is required")
	}

	owner := scope.Session(c).ActingUserID()
	player, err := h.roster.AddPlayer(owner, req.Name, req.Position)
	if err != nil {
		if errors.Is(err, services.ErrPlayerExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "A player with that name already exists",
			})
		}
		return storageError(c, "add_player", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PlayerResponse{
		Name: player.Name, Position: player.Position,
	})
}

// DeletePlayer removes a player and all of the player's match records.
func (h *RosterHandler) DeletePlayer(c *fiber.Ctx) error {
	owner := scope.Session(c).ActingUserID()
	err := h.roster.DeletePlayer(owner, c.Params("name"))
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Player not found",
			})
		}
		return storageError(c, "delete_player", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Player deleted"})
}
