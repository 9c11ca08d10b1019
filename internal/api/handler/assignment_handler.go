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

// AssignmentHandler serves /class-assignments.
type AssignmentHandler struct {
	svc    service.AssignmentService
	logger *zap.Logger
}

// Create POST /class-assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateClassAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	assignment, err := h.svc.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFacultyNotFound):
			response.NotFound(c, 14003, "faculty not found")
		case errors.Is(err, service.ErrAssignmentExists):
			response.Error(c, http.StatusConflict, 14007, "class assignment already exists for this class")
		case errors.Is(err, service.ErrInvalidClassFields):
			response.BadRequest(c, 10001, "invalid class fields")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, "attendance start date must be strictly before the end date")
		default:
			h.logger.Error("create class assignment failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.Created(c, assignment)
}

// Get GET /class-assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 14006, "class assignment not found")
			return
		}
		h.logger.Error("get class assignment failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, assignment)
}

// List GET /class-assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	var req dto.ClassAssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	assignments, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("list class assignments failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKPage(c, assignments, total, req.GetPage(), req.GetPageSize())
}

// Update PUT /class-assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req dto.UpdateClassAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	assignment, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 14006, "class assignment not found")
		case errors.Is(err, service.ErrFacultyNotFound):
			response.NotFound(c, 14003, "faculty not found")
		default:
			h.logger.Error("update class assignment failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, assignment)
}

// Delete DELETE /class-assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 14006, "class assignment not found")
			return
		}
		h.logger.Error("delete class assignment failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "class assignment deleted"})
}

// UpdateAttendanceDates PUT /class-assignments/:id/attendance-dates
func (h *AssignmentHandler) UpdateAttendanceDates(c *gin.Context) {
	var req dto.UpdateAttendanceDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	assignment, err := h.svc.UpdateAttendanceDates(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 14006, "class assignment not found")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, "attendance start date must be strictly before the end date")
		default:
			h.logger.Error("update attendance dates failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, assignment)
}

// CanMark GET /class-assignments/can-mark
// Lets the SPA grey out the marking button before the user fills the form.
func (h *AssignmentHandler) CanMark(c *gin.Context) {
	var req dto.CanMarkRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	result, err := h.svc.CanMark(c.Request.Context(), req.Batch, req.Year, req.Semester, req.Section, currentDepartment(c), req.Date)
	if err != nil {
		h.logger.Error("can-mark check failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
