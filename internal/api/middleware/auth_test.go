package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/config"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

// stubAccountChecker marks every account active unless listed.
type stubAccountChecker struct {
	inactive map[string]bool
}

func (s *stubAccountChecker) IsActive(_ context.Context, userID string) (bool, error) {
	return !s.inactive[userID], nil
}

func newAuthRouter(jwtMgr *jwt.Manager, extra ...gin.HandlerFunc) *gin.Engine {
	return newAuthRouterWithAccounts(jwtMgr, &stubAccountChecker{}, extra...)
}

func newAuthRouterWithAccounts(jwtMgr *jwt.Manager, accounts AccountChecker, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(jwtMgr, nil, accounts, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserID), "role": c.GetString(CtxRole)})
	})
	r.GET("/secure", handlers...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouter(jwtMgr)

	token, err := jwtMgr.GenerateAccessToken("u1", model.RoleFaculty, "CSE")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	if w := get(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("expected 200 with valid token, got %d: %s", w.Code, w.Body.String())
	}
	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", w.Code)
	}
	if w := get(r, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
	if w := get(r, "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouter(jwtMgr)

	refresh, err := jwtMgr.GenerateRefreshToken("u1", model.RoleFaculty, "CSE")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if w := get(r, "Bearer "+refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("expected refresh token rejected on API routes, got %d", w.Code)
	}
}

func TestJWTAuthRejectsDeactivatedAccount(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouterWithAccounts(jwtMgr, &stubAccountChecker{inactive: map[string]bool{"u1": true}})

	token, err := jwtMgr.GenerateAccessToken("u1", model.RoleFaculty, "CSE")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if w := get(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deactivated account, got %d", w.Code)
	}

	other, err := jwtMgr.GenerateAccessToken("u2", model.RoleFaculty, "CSE")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}
	if w := get(r, "Bearer "+other); w.Code != http.StatusOK {
		t.Errorf("expected active account allowed, got %d", w.Code)
	}
}

func TestMinRole(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouter(jwtMgr, HODAndAbove())

	cases := map[string]int{
		model.RoleStudent:   http.StatusForbidden,
		model.RoleFaculty:   http.StatusForbidden,
		model.RoleHOD:       http.StatusOK,
		model.RolePrincipal: http.StatusOK,
		model.RoleAdmin:     http.StatusOK,
	}
	for role, want := range cases {
		token, err := jwtMgr.GenerateAccessToken("u1", role, "CSE")
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}
		if w := get(r, "Bearer "+token); w.Code != want {
			t.Errorf("role %s: expected %d, got %d", role, want, w.Code)
		}
	}
}

func TestAdminOnly(t *testing.T) {
	jwtMgr := newTestJWTManager()
	r := newAuthRouter(jwtMgr, AdminOnly())

	admin, _ := jwtMgr.GenerateAccessToken("u1", model.RoleAdmin, "")
	principal, _ := jwtMgr.GenerateAccessToken("u2", model.RolePrincipal, "")

	if w := get(r, "Bearer "+admin); w.Code != http.StatusOK {
		t.Errorf("expected admin allowed, got %d", w.Code)
	}
	if w := get(r, "Bearer "+principal); w.Code != http.StatusForbidden {
		t.Errorf("expected principal rejected, got %d", w.Code)
	}
}
