package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/api/middleware"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/service"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// AuthHandler serves /auth.
type AuthHandler struct {
	svc    service.AuthService
	logger *zap.Logger
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 11001, "invalid email or password")
		case errors.Is(err, service.ErrAccountInactive):
			response.Forbidden(c, 11002, "account is deactivated")
		default:
			h.logger.Error("login failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, tokens)
}

// RefreshToken POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	tokens, err := h.svc.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			response.Unauthorized(c, 11003, "invalid refresh token")
		case errors.Is(err, service.ErrAccountInactive):
			response.Forbidden(c, 11002, "account is deactivated")
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 11003, "invalid refresh token")
		default:
			h.logger.Error("token refresh failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, tokens)
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "logged out"})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.GetCurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "user not found")
			return
		}
		h.logger.Error("get current user failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// ChangePassword POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), currentUserID(c), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongOldPassword):
			response.BadRequest(c, 11004, "old password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		default:
			h.logger.Error("change password failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, gin.H{"message": "password changed"})
}
