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

// FacultyHandler serves /faculties plus the resolver and audit trail.
type FacultyHandler struct {
	svc    service.FacultyService
	logger *zap.Logger
}

// Create POST /faculties
func (h *FacultyHandler) Create(c *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	faculty, err := h.svc.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "user not found")
		case errors.Is(err, service.ErrFacultyWrongRole):
			response.BadRequest(c, 14005, "user does not have the faculty role")
		case errors.Is(err, service.ErrFacultyExists):
			response.Error(c, http.StatusConflict, 14004, "faculty record already exists for this user")
		case errors.Is(err, service.ErrInvalidClassFields):
			response.BadRequest(c, 10001, "invalid class fields in assigned classes")
		default:
			h.logger.Error("create faculty failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.Created(c, faculty)
}

// Get GET /faculties/:id
func (h *FacultyHandler) Get(c *gin.Context) {
	faculty, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			response.NotFound(c, 14003, "faculty not found")
			return
		}
		h.logger.Error("get faculty failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, faculty)
}

// List GET /faculties
func (h *FacultyHandler) List(c *gin.Context) {
	var req dto.FacultyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	faculties, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("list faculty failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKPage(c, faculties, total, req.GetPage(), req.GetPageSize())
}

// Update PUT /faculties/:id
func (h *FacultyHandler) Update(c *gin.Context) {
	var req dto.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	faculty, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFacultyNotFound):
			response.NotFound(c, 14003, "faculty not found")
		case errors.Is(err, service.ErrInvalidClassFields):
			response.BadRequest(c, 10001, "invalid class fields in assigned classes")
		default:
			h.logger.Error("update faculty failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, faculty)
}

// Delete DELETE /faculties/:id
func (h *FacultyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrFacultyNotFound) {
			response.NotFound(c, 14003, "faculty not found")
			return
		}
		h.logger.Error("delete faculty failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "faculty deleted"})
}

// Resolve GET /faculties/resolve
// Maps a class context to the faculty authorized for it and reports
// which strategy matched.
func (h *FacultyHandler) Resolve(c *gin.Context) {
	var req dto.ResolveFacultyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	class := service.ClassContext{
		ClassID:    req.ClassID,
		Batch:      req.Batch,
		Year:       req.Year,
		Semester:   req.Semester,
		Section:    req.Section,
		Department: req.Department,
	}
	res, err := h.svc.Resolve(c.Request.Context(), "resolve_faculty", currentUserID(c), class)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFacultyFound):
			response.NotFound(c, 14001, "no valid faculty found for this class")
		case errors.Is(err, service.ErrInvalidClassFields):
			response.BadRequest(c, 10001, "invalid class identifier")
		default:
			h.logger.Error("resolve faculty failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	resp := dto.ResolveFacultyResponse{FacultyID: res.Faculty.FacultyID, Source: res.Source}
	if res.Faculty.User != nil {
		resp.Name = res.Faculty.User.Name
	}
	response.OK(c, resp)
}

// AuditLogs GET /faculties/audit-logs
func (h *FacultyHandler) AuditLogs(c *gin.Context) {
	var req dto.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	logs, total, err := h.svc.ListAuditLogs(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("list audit logs failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}
