package services

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/models"
	"github.com/sorofreja/playerdev-backend/internal/token"
	"gorm.io/gorm"
)

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrNotPermitted = errors.New("role not permitted")
)

// SessionService wraps the credential store and the token service
// behind login/logout/current-user, and owns the impersonation
// override.
type SessionService struct {
	db     *gorm.DB
	users  *UserService
	tokens *token.Service
	ttl    time.Duration
}

func NewSessionService(db *gorm.DB, users *UserService, tokens *token.Service, ttl time.Duration) *SessionService {
	return &SessionService{db: db, users: users, tokens: tokens, ttl: ttl}
}

// Login verifies credentials, mints an access token, and records the
// session server-side keyed by the token's hash.
func (s *SessionService) Login(username, password string) (*models.Session, string, error) {
	user, err := s.users.VerifyUser(username, password)
	if err != nil {
		return nil, "", err
	}

	raw, err := s.tokens.Mint(user.ID, user.Username, user.Role.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to mint token: %w", err)
	}

	sess := models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  user.Username,
		RoleName:  user.Role.Name,
		TokenHash: hashToken(raw),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}
	return &sess, raw, nil
}

// Logout destroys the session row, impersonation override included.
func (s *SessionService) Logout(raw string) error {
	return s.db.Where("token_hash = ?", hashToken(raw)).Delete(&models.Session{}).Error
}

// Invalidate force-logs-out whatever session the token belonged to.
// Called whenever token verification fails at an access point.
func (s *SessionService) Invalidate(raw string) {
	s.db.Where("token_hash = ?", hashToken(raw)).Delete(&models.Session{})
}

// Current resolves the session for a presented token. The token is
// re-verified on every access; a verification failure destroys the
// session immediately. A valid token without a session row means the
// user logged out, so it is rejected too.
func (s *SessionService) Current(raw string) (*models.Session, error) {
	if raw == "" {
		return nil, nil
	}
	if _, err := s.tokens.Verify(raw); err != nil {
		s.Invalidate(raw)
		return nil, nil
	}

	var sess models.Session
	err := s.db.Where("token_hash = ?", hashToken(raw)).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &sess, nil
}

// Impersonate makes the session act on the target user's data scope.
// Only roles with the impersonate capability may call it.
func (s *SessionService) Impersonate(sess *models.Session, targetUsername string) error {
	if sess == nil {
		return ErrNotLoggedIn
	}
	if !authz.Allowed(authz.Role(sess.RoleName), authz.Impersonate) {
		return ErrNotPermitted
	}

	target, err := s.users.ByUsername(targetUsername)
	if err != nil {
		return err
	}

	if err := s.db.Model(sess).Update("impersonated_user_id", target.ID).Error; err != nil {
		return fmt.Errorf("failed to set impersonation: %w", err)
	}
	sess.ImpersonatedUserID = &target.ID
	return nil
}

// StopImpersonating restores the session to its own data scope.
func (s *SessionService) StopImpersonating(sess *models.Session) error {
	if sess == nil {
		return ErrNotLoggedIn
	}
	if err := s.db.Model(sess).Update("impersonated_user_id", nil).Error; err != nil {
		return fmt.Errorf("failed to clear impersonation: %w", err)
	}
	sess.ImpersonatedUserID = nil
	return nil
}

// SweepExpired deletes session rows older than the token TTL. Lazy
// invalidation in Current already rejects them; this is storage
// hygiene.
func (s *SessionService) SweepExpired() (int64, error) {
	cutoff := s.tokens.Now().Add(-s.ttl)
	res := s.db.Where("created_at < ?", cutoff).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

func hashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h)
}
