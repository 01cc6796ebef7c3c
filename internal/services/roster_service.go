package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sorofreja/playerdev-backend/internal/models"
	"github.com/sorofreja/playerdev-backend/internal/scope"
	"gorm.io/gorm"
)

var (
	ErrPlayerExists   = errors.New("player already exists")
	ErrPlayerNotFound = errors.New("player not found")
)

const defaultPosition = "Not specified"

// RosterService manages players. Every operation takes the acting
// owner id and only ever touches that owner's rows.
type RosterService struct {
	db *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{db: db}
}

func (s *RosterService) AddPlayer(owner uuid.UUID, name, position string) (*models.Player, error) {
	if name == "" {
		return nil, errors.New("player name is required")
	}
	if position == "" {
		position = defaultPosition
	}

	var existing models.Player
	if err := s.db.Scopes(scope.ForOwner(owner)).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrPlayerExists
	}

	player := models.Player{
		ID:       uuid.New(),
		Name:     name,
		Position: position,
		UserID:   owner,
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	return &player, nil
}

// DeletePlayer removes the owner's player and all of that player's
// match records in one transaction. The ownership check happens on the
// lookup, so guessing another user's player name (or id) has no effect.
func (s *RosterService) DeletePlayer(owner uuid.UUID, name string) error {
	player, err := s.playerByName(owner, name)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_id = ?", player.ID).Delete(&models.MatchRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(player).Error
	})
}

func (s *RosterService) Players(owner uuid.UUID) ([]models.Player, error) {
	var players []models.Player
	err := s.db.Scopes(scope.ForOwner(owner)).Order("name").Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *RosterService) playerByName(owner uuid.UUID, name string) (*models.Player, error) {
	var player models.Player
	err := s.db.Scopes(scope.ForOwner(owner)).Where("name = ?", name).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}
	return &player, nil
}
