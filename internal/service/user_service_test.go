package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
)

func setupTestUserService() (UserService, *mockUserRepo) {
	repo, users, _, _, _, _, _, _ := newMockRepository()
	return NewUserService(repo, zap.NewNop()), users
}

func TestCreateUser(t *testing.T) {
	svc, users := setupTestUserService()

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:       "Priya N",
		Email:      "priya@college.edu",
		Password:   "secret123",
		Role:       model.RoleHOD,
		Department: "CSE",
	}, "admin1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Role != model.RoleHOD || resp.Status != model.StatusActive {
		t.Errorf("unexpected response %+v", resp)
	}

	stored := users.users[resp.ID]
	if stored == nil {
		t.Fatal("expected account stored")
	}
	if stored.PasswordHash == "secret123" {
		t.Error("expected hashed password, got plaintext")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, users := setupTestUserService()
	seedUser(users, "u1", model.RoleFaculty, "CSE")

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Name:     "Dup",
		Email:    "u1@college.edu",
		Password: "secret123",
		Role:     model.RoleFaculty,
	}, "admin1")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestDeactivateUser(t *testing.T) {
	svc, users := setupTestUserService()
	seedUser(users, "u1", model.RoleFaculty, "CSE")

	if err := svc.Deactivate(context.Background(), "u1", "admin1"); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	// the row stays; only the status flips
	if users.users["u1"] == nil {
		t.Fatal("expected account retained")
	}
	if users.users["u1"].Status != model.StatusInactive {
		t.Errorf("expected inactive, got %s", users.users["u1"].Status)
	}
}

func TestDeactivateUnknownUser(t *testing.T) {
	svc, _ := setupTestUserService()

	if err := svc.Deactivate(context.Background(), "missing", "admin1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, users := setupTestUserService()
	u := seedUser(users, "u1", model.RoleFaculty, "CSE")
	u.PasswordHash = "old-hash"

	if err := svc.ResetPassword(context.Background(), "u1", "brandnew456", "admin1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if u.PasswordHash == "old-hash" {
		t.Error("expected password hash replaced")
	}
}

func TestListUsersFilters(t *testing.T) {
	svc, users := setupTestUserService()
	seedUser(users, "u1", model.RoleFaculty, "CSE")
	seedUser(users, "u2", model.RoleFaculty, "ECE")
	seedUser(users, "u3", model.RoleHOD, "CSE")

	req := &dto.UserListRequest{Role: model.RoleFaculty, Department: "CSE"}
	result, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(result) != 1 {
		t.Fatalf("expected 1 match, got total=%d len=%d", total, len(result))
	}
	if result[0].ID != "u1" {
		t.Errorf("expected u1, got %s", result[0].ID)
	}
}

func TestUpdateUser(t *testing.T) {
	svc, _ := setupTestUserService()

	_, err := svc.Update(context.Background(), "missing", &dto.UpdateUserRequest{}, "admin1")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
