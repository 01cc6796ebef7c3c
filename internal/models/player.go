package models

import (
	"time"

	"github.com/google/uuid"
)

// Player belongs to the user who created it; names are unique per
// owner, not globally.
type Player struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_players_owner_name" json:"name"`
	Position  string    `gorm:"size:50;not null" json:"position"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_players_owner_name;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
