package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record of a logged-in user. It is keyed
// by the SHA-256 of the access token, so a replayed token with no
// matching row is rejected even while its signature is still valid.
type Session struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Username           string     `gorm:"size:100;not null" json:"username"`
	RoleName           string     `gorm:"size:50;not null" json:"role"`
	TokenHash          string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ImpersonatedUserID *uuid.UUID `gorm:"type:uuid" json:"impersonated_user_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ActingUserID is the single seam through which impersonation works:
// every player/match query is scoped by this id, never by UserID
// directly.
func (s *Session) ActingUserID() uuid.UUID {
	if s.ImpersonatedUserID != nil {
		return *s.ImpersonatedUserID
	}
	return s.UserID
}
