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

// HolidayHandler serves /holidays.
type HolidayHandler struct {
	svc    service.HolidayService
	logger *zap.Logger
}

// Create POST /holidays
func (h *HolidayHandler) Create(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	holiday, err := h.svc.Create(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrHolidayExists) {
			response.Error(c, http.StatusConflict, 16001, "a holiday already exists for this date and department")
			return
		}
		h.logger.Error("create holiday failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, holiday)
}

// Get GET /holidays/:id
func (h *HolidayHandler) Get(c *gin.Context) {
	holiday, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 16002, "holiday not found")
			return
		}
		h.logger.Error("get holiday failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, holiday)
}

// List GET /holidays
func (h *HolidayHandler) List(c *gin.Context) {
	var req dto.HolidayListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	holidays, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("list holidays failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, holidays)
}

// Update PUT /holidays/:id
func (h *HolidayHandler) Update(c *gin.Context) {
	var req dto.UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	holiday, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHolidayNotFound):
			response.NotFound(c, 16002, "holiday not found")
		case errors.Is(err, service.ErrHolidayExists):
			response.Error(c, http.StatusConflict, 16001, "a holiday already exists for this date and department")
		default:
			h.logger.Error("update holiday failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, holiday)
}

// Delete DELETE /holidays/:id
func (h *HolidayHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 16002, "holiday not found")
			return
		}
		h.logger.Error("delete holiday failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "holiday deleted"})
}

// ExportICS GET /holidays/calendar.ics
func (h *HolidayHandler) ExportICS(c *gin.Context) {
	department := c.Query("department")
	if department == "" {
		department = currentDepartment(c)
	}

	feed, err := h.svc.ExportICS(c.Request.Context(), department)
	if err != nil {
		h.logger.Error("holiday calendar export failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="holidays.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
