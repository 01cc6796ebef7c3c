package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse describes who the caller is and whose data scope
// they are acting in.
type SessionResponse struct {
	UserID       uuid.UUID  `json:"user_id"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	ActingUserID uuid.UUID  `json:"acting_user_id"`
	Impersonated *uuid.UUID `json:"impersonated_user_id,omitempty"`
}

// ErrorResponse is the uniform error shape. Detail is only populated
// for admin callers; everyone else gets the generic message.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
