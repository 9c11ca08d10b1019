package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dushyanth88/Attendance-project-sub001/config"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/jwt"
)

func setupTestAuthService() (AuthService, *jwt.Manager, *mockUserRepo) {
	repo, users, _, _, _, _, _, _ := newMockRepository()
	cfg := &config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	jwtMgr := jwt.NewManager(cfg)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, jwtMgr, users
}

func createTestAccount(users *mockUserRepo, id, email, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.User{
		UserID:       id,
		Name:         "Test " + id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Department:   "CSE",
		Status:       model.StatusActive,
	}
	users.users[id] = u
	return u
}

// ────────────────────── Login ──────────────────────

func TestLogin(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "fac@college.edu", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a token pair")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("unexpected expires_in %d", resp.ExpiresIn)
	}
	if resp.User.Role != model.RoleFaculty {
		t.Errorf("unexpected role %s", resp.User.Role)
	}
	if users.users["u1"].LastLogin == nil {
		t.Error("expected last login stamped")
	}
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "FAC@College.edu", Password: "secret123"}); err != nil {
		t.Errorf("expected case-insensitive email match, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "fac@college.edu", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@college.edu", Password: "x"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _, users := setupTestAuthService()
	u := createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)
	u.Status = model.StatusInactive

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "fac@college.edu", Password: "secret123"})
	if !errors.Is(err, ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
}

// ────────────────────── RefreshToken ──────────────────────

func TestRefreshToken(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "fac@college.edu", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	resp, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "fac@college.edu", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken for access token, got %v", err)
	}
}

func TestRefreshTokenGarbage(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefreshTokenInactiveUser(t *testing.T) {
	svc, jwtMgr, users := setupTestAuthService()
	u := createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	refresh, err := jwtMgr.GenerateRefreshToken(u.UserID, u.Role, u.Department)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	u.Status = model.StatusInactive

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh})
	if !errors.Is(err, ErrAccountInactive) {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
}

// ────────────────────── Logout / current user ──────────────────────

func TestLogoutWithoutRedisIsNoop(t *testing.T) {
	svc, jwtMgr, users := setupTestAuthService()
	u := createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	token, err := jwtMgr.GenerateAccessToken(u.UserID, u.Role, u.Department)
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Errorf("expected no-op logout, got %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	resp, err := svc.GetCurrentUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if resp.Email != "fac@college.edu" {
		t.Errorf("unexpected email %s", resp.Email)
	}

	if _, err := svc.GetCurrentUser(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ────────────────────── ChangePassword ──────────────────────

func TestIsActive(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)
	inactive := createTestAccount(users, "u2", "gone@college.edu", "secret123", model.RoleFaculty)
	inactive.Status = model.StatusInactive

	if active, err := svc.IsActive(context.Background(), "u1"); err != nil || !active {
		t.Errorf("expected active account, got active=%v err=%v", active, err)
	}
	if active, err := svc.IsActive(context.Background(), "u2"); err != nil || active {
		t.Errorf("expected deactivated account reported inactive, got active=%v err=%v", active, err)
	}
	if active, err := svc.IsActive(context.Background(), "missing"); err != nil || active {
		t.Errorf("expected unknown account reported inactive, got active=%v err=%v", active, err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	err := svc.ChangePassword(context.Background(), "u1", &dto.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "brandnew456",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "fac@college.edu", Password: "brandnew456"}); err != nil {
		t.Errorf("expected new password to log in, got %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "fac@college.edu", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected old password rejected, got %v", err)
	}
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc, _, users := setupTestAuthService()
	createTestAccount(users, "u1", "fac@college.edu", "secret123", model.RoleFaculty)

	err := svc.ChangePassword(context.Background(), "u1", &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "brandnew456",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Errorf("expected ErrWrongOldPassword, got %v", err)
	}
}
