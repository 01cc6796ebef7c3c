package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/models"
	"github.com/sorofreja/playerdev-backend/internal/scope"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUnknownRole        = errors.New("unknown role")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminProtected     = errors.New("admin accounts cannot be deleted")
)

// dummyHash is compared against when a username is unknown, so unknown
// usernames cost the same bcrypt time as wrong passwords.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)

// UserService is the credential store and the pending-user approval
// workflow.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates an immediately active account. Used by admins.
func (s *UserService) CreateUser(username, password, email string, role authz.Role) (*models.User, error) {
	return s.create(username, password, email, role, models.StatusActive)
}

// RegisterUser creates a self-registered account. It cannot log in
// until an admin approves it.
func (s *UserService) RegisterUser(username, password, email string, role authz.Role) (*models.User, error) {
	return s.create(username, password, email, role, models.StatusPending)
}

func (s *UserService) create(username, password, email string, role authz.Role, status string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, errors.New("username and email are required")
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	roleRow, err := s.roleByName(role)
	if err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       roleRow.ID,
		Role:         *roleRow,
		Status:       status,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// The pre-checks race with concurrent inserts; the unique
		// constraint is the authoritative answer.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if s.db.Where("username = ?", username).First(&existing).Error == nil {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// VerifyUser checks credentials and returns the user on success. It
// fails closed: lookup errors, unknown usernames, non-active accounts,
// and hash mismatches all come back as ErrInvalidCredentials.
func (s *UserService) VerifyUser(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetUserRole(username string) (authz.Role, error) {
	var user models.User
	if err := s.db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		return "", ErrUserNotFound
	}
	return authz.Role(user.Role.Name), nil
}

func (s *UserService) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Role").Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// PendingUsers returns accounts awaiting approval, newest first.
func (s *UserService) PendingUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Preload("Role").
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}
	return users, nil
}

// ApproveUser activates a pending account. Returns false when the user
// is not currently pending, which also makes a racing second approval
// a no-op.
func (s *UserService) ApproveUser(username string) (bool, error) {
	res := s.db.Model(&models.User{}).
		Where("username = ? AND status = ?", username, models.StatusPending).
		Update("status", models.StatusActive)
	if res.Error != nil {
		return false, fmt.Errorf("failed to approve user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RejectUser deletes a pending account. Active accounts and admin-role
// rows are untouched.
func (s *UserService) RejectUser(username string) (bool, error) {
	adminRole := s.db.Model(&models.Role{}).Select("id").Where("name = ?", string(authz.RoleAdmin))
	res := s.db.Where("username = ? AND status = ? AND role_id NOT IN (?)",
		username, models.StatusPending, adminRole).
		Delete(&models.User{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to reject user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// UpdateUser applies admin edits. Nil fields are left unchanged. A
// promotion to admin also activates the account, admins are never
// pending.
func (s *UserService) UpdateUser(username string, email, password *string, role *authz.Role) error {
	user, err := s.ByUsername(username)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if email != nil {
		updates["email"] = *email
	}
	if password != nil {
		if len(*password) < 8 {
			return ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}
	if role != nil {
		roleRow, err := s.roleByName(*role)
		if err != nil {
			return err
		}
		updates["role_id"] = roleRow.ID
		if *role == authz.RoleAdmin {
			updates["status"] = models.StatusActive
		}
	}
	if len(updates) == 0 {
		return nil
	}

	// Update via a fresh statement: going through the loaded user would
	// save its preloaded Role association first, writing the old
	// role_id back over the map's value.
	err = s.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// DeleteUser removes an account together with its sessions, players,
// and match records. Admin accounts are exempt from this path.
func (s *UserService) DeleteUser(username string) error {
	user, err := s.ByUsername(username)
	if err != nil {
		return err
	}
	if user.Role.Name == string(authz.RoleAdmin) {
		return ErrAdminProtected
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var playerIDs []uuid.UUID
		if err := tx.Model(&models.Player{}).Scopes(scope.ForOwner(user.ID)).
			Pluck("id", &playerIDs).Error; err != nil {
			return err
		}
		if len(playerIDs) > 0 {
			if err := tx.Where("player_id IN ?", playerIDs).Delete(&models.MatchRecord{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Scopes(scope.ForOwner(user.ID)).Delete(&models.Player{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}

// BootstrapAdmin creates or updates the admin account from the
// environment. Running it repeatedly converges on the same state.
func (s *UserService) BootstrapAdmin(username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}

	user, err := s.ByUsername(username)
	if errors.Is(err, ErrUserNotFound) {
		if _, err := s.CreateUser(username, password, email, authz.RoleAdmin); err != nil {
			return fmt.Errorf("failed to create bootstrap admin: %w", err)
		}
		slog.Info("bootstrap admin created", "username", username)
		return nil
	}
	if err != nil {
		return err
	}

	roleRow, err := s.roleByName(authz.RoleAdmin)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	updates := map[string]interface{}{
		"password_hash": string(hash),
		"role_id":       roleRow.ID,
		"status":        models.StatusActive,
	}
	if email != "" {
		updates["email"] = email
	}
	if err := s.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update bootstrap admin: %w", err)
	}
	slog.Info("bootstrap admin updated", "username", username)
	return nil
}

func (s *UserService) roleByName(role authz.Role) (*models.Role, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	var row models.Role
	if err := s.db.Where("name = ?", string(role)).First(&row).Error; err != nil {
		return nil, ErrUnknownRole
	}
	return &row, nil
}
