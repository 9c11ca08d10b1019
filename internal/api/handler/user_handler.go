package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/service"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// UserHandler serves /users (admin account management).
type UserHandler struct {
	svc    service.UserService
	logger *zap.Logger
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			response.Error(c, http.StatusConflict, 13001, "email is already registered")
			return
		}
		h.logger.Error("create user failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, user)
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "user not found")
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// List GET /users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	users, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// Update PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		case errors.Is(err, service.ErrDuplicateEmail):
			response.Error(c, http.StatusConflict, 13001, "email is already registered")
		default:
			h.logger.Error("update user failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, user)
}

// Deactivate DELETE /users/:id
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.svc.Deactivate(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "user not found")
			return
		}
		h.logger.Error("deactivate user failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "user deactivated"})
}

// ResetPassword POST /users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("id"), req.NewPassword, currentUserID(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "user not found")
			return
		}
		h.logger.Error("reset password failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "password reset"})
}
