package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/api/middleware"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/service"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// AttendanceHandler serves /attendance.
type AttendanceHandler struct {
	svc      service.AttendanceService
	students service.StudentService
	logger   *zap.Logger
}

// MarkStudents POST /attendance/mark
func (h *AttendanceHandler) MarkStudents(c *gin.Context) {
	var req dto.MarkStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	result, err := h.svc.MarkStudents(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		var ambiguous *service.AmbiguousRollsError
		var unknown *service.UnknownRollsError
		var window *service.WindowError
		switch {
		case errors.As(err, &ambiguous):
			response.ErrorWithDetails(c, 400, 15006, "roll numbers listed as both absent and OD", ambiguous.Error())
		case errors.As(err, &unknown):
			response.ErrorWithDetails(c, 400, 15008, "roll numbers not on the class roster", unknown.Error())
		case errors.As(err, &window):
			if window.Before {
				response.BadRequest(c, 15002, window.Error())
			} else {
				response.BadRequest(c, 15003, window.Error())
			}
		case errors.Is(err, service.ErrStartDateNotSet):
			response.BadRequest(c, 15001, "attendance start date is not set for this class")
		case errors.Is(err, service.ErrMarkingOnHoliday):
			response.BadRequest(c, 15004, "attendance cannot be marked on a holiday")
		case errors.Is(err, service.ErrMarkingOnSunday):
			response.BadRequest(c, 15005, "attendance cannot be marked on a Sunday")
		case errors.Is(err, service.ErrEmptyRoster):
			response.NotFound(c, 15009, "no active students found for this class")
		case errors.Is(err, service.ErrNoFacultyFound):
			response.NotFound(c, 14001, "no valid faculty found for this class")
		case errors.Is(err, service.ErrInvalidClassFields), errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, err.Error())
		default:
			h.logger.Error("mark attendance failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	middleware.CountMarkedStudents(result.Total)
	response.OK(c, result)
}

// EditStudent PUT /attendance/student
func (h *AttendanceHandler) EditStudent(c *gin.Context) {
	var req dto.EditStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	record, err := h.svc.EditStudent(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 13004, "student not found")
		case errors.Is(err, service.ErrNotBoundToClass):
			response.Forbidden(c, 14002, "caller is not bound to this student's class")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, err.Error())
		default:
			h.logger.Error("edit attendance failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, record)
}

// HistoryByClass GET /attendance/history/class
func (h *AttendanceHandler) HistoryByClass(c *gin.Context) {
	var req dto.HistoryByClassRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	records, err := h.svc.HistoryByClass(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 10001, err.Error())
			return
		}
		h.logger.Error("class history failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, records)
}

// HistoryByStudent GET /attendance/history/student/:id
// Student-role callers may only read their own history.
func (h *AttendanceHandler) HistoryByStudent(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	if currentRole(c) == model.RoleStudent {
		student, err := h.students.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, service.ErrStudentNotFound) {
				response.NotFound(c, 13004, "student not found")
				return
			}
			h.logger.Error("student lookup failed", zap.Error(err))
			response.InternalError(c)
			return
		}
		if student.UserID != currentUserID(c) {
			response.Forbidden(c, 10003, "students may only access their own record")
			return
		}
	}

	records, err := h.svc.HistoryByStudent(c.Request.Context(), c.Param("id"), req.From, req.To)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 13004, "student not found")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 10001, err.Error())
		default:
			h.logger.Error("student history failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, records)
}
