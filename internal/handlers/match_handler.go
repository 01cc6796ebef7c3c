package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sorofreja/playerdev-backend/internal/dto"
	"github.com/sorofreja/playerdev-backend/internal/models"
	"github.com/sorofreja/playerdev-backend/internal/scope"
	"github.com/sorofreja/playerdev-backend/internal/services"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type MatchHandler struct {
	matches *services.MatchService
}

func NewMatchHandler(matches *services.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// RecordMatch saves one match's ratings for every selected player
// atomically.
func (h *MatchHandler) RecordMatch(c *fiber.Ctx) error {
	var req dto.RecordMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return badRequest(c, "Date must be formatted YYYY-MM-DD")
	}
	kickoff := req.Time
	if kickoff == "" {
		kickoff = "12:00"
	}
	if _, err := time.Parse(timeLayout, kickoff); err != nil {
		return badRequest(c, "Time must be formatted HH:MM")
	}

	entries := make([]services.PlayerRatings, 0, len(req.Players))
	for _, p := range req.Players {
		entries = append(entries, services.PlayerRatings{
			PlayerName:    p.Player,
			Boldholder:    models.Rating(p.Boldholder),
			Medspiller:    models.Rating(p.Medspiller),
			Presspiller:   models.Rating(p.Presspiller),
			Stottespiller: models.Rating(p.Stottespiller),
		})
	}

	owner := scope.Session(c).ActingUserID()
	if err := h.matches.RecordMatch(owner, date, kickoff, req.Opponent, entries); err != nil {
		switch {
		case errors.Is(err, services.ErrNoPlayersSelected),
			errors.Is(err, services.ErrInvalidRating):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrPlayerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "One of the selected players was not found",
			})
		}
		return storageError(c, "record_match", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Match data saved"})
}

func (h *MatchHandler) PlayerPerformance(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	owner := scope.Session(c).ActingUserID()
	rows, err := h.matches.PlayerPerformance(owner, c.Params("name"), from, to)
	if err != nil {
		if errors.Is(err, services.ErrPlayerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Player not found",
			})
		}
		return storageError(c, "player_performance", err)
	}

	resp := make([]dto.PerformanceRow, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.PerformanceRow{
			Date:          r.Date.Format(dateLayout),
			Time:          r.Kickoff,
			Opponent:      r.Opponent,
			Boldholder:    string(r.Boldholder),
			Medspiller:    string(r.Medspiller),
			Presspiller:   string(r.Presspiller),
			Stottespiller: string(r.Stottespiller),
		})
	}
	return c.JSON(resp)
}

func (h *MatchHandler) TeamPerformance(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	owner := scope.Session(c).ActingUserID()
	rows, err := h.matches.TeamPerformance(owner, from, to)
	if err != nil {
		return storageError(c, "team_performance", err)
	}

	resp := make([]dto.PerformanceRow, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.PerformanceRow{
			Date:          r.Date.Format(dateLayout),
			Time:          r.Kickoff,
			Boldholder:    string(r.Boldholder),
			Medspiller:    string(r.Medspiller),
			Presspiller:   string(r.Presspiller),
			Stottespiller: string(r.Stottespiller),
		})
	}
	return c.JSON(resp)
}

func (h *MatchHandler) Seasons(c *fiber.Ctx) error {
	owner := scope.Session(c).ActingUserID()
	years, err := h.matches.Seasons(owner)
	if err != nil {
		return storageError(c, "seasons", err)
	}
	return c.JSON(dto.SeasonsResponse{Seasons: years})
}

func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, errors.New("from must be formatted YYYY-MM-DD")
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, errors.New("to must be formatted YYYY-MM-DD")
		}
		to = &t
	}
	return from, to, nil
}
