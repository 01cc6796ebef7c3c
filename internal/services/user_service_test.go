package services

import (
	"errors"
	"testing"

	"github.com/sorofreja/playerdev-backend/internal/authz"
	"github.com/sorofreja/playerdev-backend/internal/models"
)

func TestCreateAndVerifyUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "hemmeligt1", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}

	user, err := svc.VerifyUser("lars", "hemmeligt1")
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if user.Role.Name != "coach" {
		t.Fatalf("role = %q, want coach", user.Role.Name)
	}
	if user.Status != models.StatusActive {
		t.Fatalf("status = %q, want active", user.Status)
	}

	if _, err := svc.VerifyUser("lars", "forkert-kode"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should fail closed, got %v", err)
	}
	if _, err := svc.VerifyUser("nobody", "hemmeligt1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user should fail closed, got %v", err)
	}
}

func TestCreateUserUniqueness(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "hemmeligt1", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}

	if _, err := svc.CreateUser("lars", "anden-kode", "other@example.com", authz.RoleObserver); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username, got %v", err)
	}
	if _, err := svc.CreateUser("other", "anden-kode", "lars@example.com", authz.RoleObserver); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email, got %v", err)
	}

	// The prior row is unchanged by the failed attempts.
	user, err := svc.VerifyUser("lars", "hemmeligt1")
	if err != nil {
		t.Fatalf("original user should still verify: %v", err)
	}
	if user.Role.Name != "coach" {
		t.Fatalf("original role changed to %q", user.Role.Name)
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "hemmeligt1", "l@e.com", authz.Role("manager")); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("unknown role, got %v", err)
	}
	if _, err := svc.CreateUser("lars", "kort", "l@e.com", authz.RoleCoach); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password, got %v", err)
	}
}

func TestApprovalWorkflow(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.RegisterUser("alice", "hemmeligt1", "alice@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("register error: %v", err)
	}

	// Pending accounts cannot authenticate.
	if _, err := svc.VerifyUser("alice", "hemmeligt1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("pending user should not verify, got %v", err)
	}

	pending, err := svc.PendingUsers()
	if err != nil {
		t.Fatalf("pending error: %v", err)
	}
	if len(pending) != 1 || pending[0].Username != "alice" {
		t.Fatalf("pending = %+v, want alice", pending)
	}

	ok, err := svc.ApproveUser("alice")
	if err != nil || !ok {
		t.Fatalf("approve = %v, %v; want true", ok, err)
	}
	if _, err := svc.VerifyUser("alice", "hemmeligt1"); err != nil {
		t.Fatalf("approved user should verify: %v", err)
	}

	// A second approval is a no-op.
	if ok, err := svc.ApproveUser("alice"); err != nil || ok {
		t.Fatalf("second approve = %v, %v; want false", ok, err)
	}
}

func TestRejectUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.RegisterUser("bob", "hemmeligt1", "bob@example.com", authz.RoleObserver); err != nil {
		t.Fatalf("register error: %v", err)
	}

	ok, err := svc.RejectUser("bob")
	if err != nil || !ok {
		t.Fatalf("reject = %v, %v; want true", ok, err)
	}

	if ok, _ := svc.ApproveUser("bob"); ok {
		t.Fatalf("approve after reject should be a no-op")
	}
	if _, err := svc.VerifyUser("bob", "hemmeligt1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("rejected user should not verify, got %v", err)
	}

	// Rejecting an active account is a no-op.
	if _, err := svc.CreateUser("carol", "hemmeligt1", "carol@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if ok, _ := svc.RejectUser("carol"); ok {
		t.Fatalf("reject of an active user should be a no-op")
	}
}

func TestGetUserRole(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "hemmeligt1", "lars@example.com", authz.RoleAssistantCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}

	role, err := svc.GetUserRole("lars")
	if err != nil || role != authz.RoleAssistantCoach {
		t.Fatalf("role = %q, %v; want assistant_coach", role, err)
	}
	if _, err := svc.GetUserRole("nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user, got %v", err)
	}
}

func TestBootstrapAdminIdempotent(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if err := svc.BootstrapAdmin("admin", "foerste-kode", "admin@example.com"); err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	if _, err := svc.VerifyUser("admin", "foerste-kode"); err != nil {
		t.Fatalf("admin should verify: %v", err)
	}

	// A second run converges instead of failing on uniqueness.
	if err := svc.BootstrapAdmin("admin", "anden-kode", "admin@example.com"); err != nil {
		t.Fatalf("second bootstrap error: %v", err)
	}
	if _, err := svc.VerifyUser("admin", "anden-kode"); err != nil {
		t.Fatalf("admin should verify with rotated password: %v", err)
	}

	users, err := svc.ListUsers()
	if err != nil || len(users) != 1 {
		t.Fatalf("users = %d, %v; want exactly one", len(users), err)
	}
	if users[0].Role.Name != "admin" || users[0].Status != models.StatusActive {
		t.Fatalf("bootstrap admin row = %+v", users[0])
	}
}

func strp(s string) *string { return &s }

func TestUpdateUserRole(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "hemmeligt1", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}

	observer := authz.RoleObserver
	if err := svc.UpdateUser("lars", nil, nil, &observer); err != nil {
		t.Fatalf("update error: %v", err)
	}

	// The change must survive a reload, not just the returned struct.
	role, err := svc.GetUserRole("lars")
	if err != nil || role != authz.RoleObserver {
		t.Fatalf("role after update = %q, %v; want observer", role, err)
	}

	unknown := authz.Role("manager")
	if err := svc.UpdateUser("lars", nil, nil, &unknown); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("unknown role, got %v", err)
	}
	if err := svc.UpdateUser("nobody", nil, nil, &observer); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user, got %v", err)
	}
}

func TestUpdateUserEmailAndPassword(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "hemmeligt1", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.UpdateUser("lars", strp("ny@example.com"), strp("anden-kode"), nil); err != nil {
		t.Fatalf("update error: %v", err)
	}

	user, err := svc.VerifyUser("lars", "anden-kode")
	if err != nil {
		t.Fatalf("new password should verify: %v", err)
	}
	if user.Email != "ny@example.com" {
		t.Fatalf("email = %q, want ny@example.com", user.Email)
	}
	if user.Role.Name != "coach" {
		t.Fatalf("role changed to %q by an email/password edit", user.Role.Name)
	}
	if _, err := svc.VerifyUser("lars", "hemmeligt1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer verify, got %v", err)
	}

	if err := svc.UpdateUser("lars", nil, strp("kort"), nil); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("short password, got %v", err)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "hemmeligt1", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := svc.CreateUser("mette", "hemmeligt1", "mette@example.com", authz.RoleObserver); err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.UpdateUser("mette", strp("lars@example.com"), nil, nil); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email, got %v", err)
	}
	user, err := svc.ByUsername("mette")
	if err != nil || user.Email != "mette@example.com" {
		t.Fatalf("email after failed update = %q, %v", user.Email, err)
	}
}

func TestUpdateUserPromotionActivates(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.RegisterUser("lars", "hemmeligt1", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("register error: %v", err)
	}

	admin := authz.RoleAdmin
	if err := svc.UpdateUser("lars", nil, nil, &admin); err != nil {
		t.Fatalf("update error: %v", err)
	}

	// Admins are always active, so the promotion activates the pending
	// account and it is out of reach of the rejection path.
	user, err := svc.VerifyUser("lars", "hemmeligt1")
	if err != nil {
		t.Fatalf("promoted user should verify: %v", err)
	}
	if user.Role.Name != "admin" || user.Status != models.StatusActive {
		t.Fatalf("promoted user = role %q status %q", user.Role.Name, user.Status)
	}
	if ok, err := svc.RejectUser("lars"); err != nil || ok {
		t.Fatalf("reject of an admin = %v, %v; want no-op", ok, err)
	}
}

func TestBootstrapAdminPromotesExistingUser(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if _, err := svc.CreateUser("lars", "gammel-kode", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := svc.BootstrapAdmin("lars", "ny-kode99", "admin@example.com"); err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}

	user, err := svc.VerifyUser("lars", "ny-kode99")
	if err != nil {
		t.Fatalf("bootstrap admin should verify with the configured password: %v", err)
	}
	if user.Role.Name != "admin" {
		t.Fatalf("role = %q, want admin", user.Role.Name)
	}
	if user.Status != models.StatusActive || user.Email != "admin@example.com" {
		t.Fatalf("bootstrap admin row = status %q email %q", user.Status, user.Email)
	}
}

func TestDeleteUserProtectsAdmins(t *testing.T) {
	svc := NewUserService(newTestDB(t))

	if err := svc.BootstrapAdmin("admin", "hemmeligt1", "admin@example.com"); err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	if err := svc.DeleteUser("admin"); !errors.Is(err, ErrAdminProtected) {
		t.Fatalf("admin delete should be refused, got %v", err)
	}

	if _, err := svc.CreateUser("lars", "hemmeligt1", "lars@example.com", authz.RoleCoach); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := svc.DeleteUser("lars"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := svc.ByUsername("lars"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("deleted user should be gone, got %v", err)
	}
}
