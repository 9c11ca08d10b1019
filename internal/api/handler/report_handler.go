package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/service"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// ReportHandler serves /reports.
type ReportHandler struct {
	svc    service.ReportService
	logger *zap.Logger
}

func (h *ReportHandler) bindReportRequest(c *gin.Context) (*dto.ReportRequest, bool) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return nil, false
	}
	return &req, true
}

func (h *ReportHandler) writeReportError(c *gin.Context, what string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyRoster):
		response.NotFound(c, 15009, "no active students found for this class")
	case errors.Is(err, service.ErrInvalidClassFields), errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 10001, err.Error())
	default:
		h.logger.Error(what+" failed", zap.Error(err))
		response.InternalError(c)
	}
}

// Summary GET /reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}
	report, err := h.svc.Summary(c.Request.Context(), currentDepartment(c), req)
	if err != nil {
		h.writeReportError(c, "summary report", err)
		return
	}
	response.OK(c, report)
}

// Detailed GET /reports/detailed
func (h *ReportHandler) Detailed(c *gin.Context) {
	req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}
	report, err := h.svc.Detailed(c.Request.Context(), currentDepartment(c), req)
	if err != nil {
		h.writeReportError(c, "detailed report", err)
		return
	}
	response.OK(c, report)
}

// Absentee GET /reports/absentee
func (h *ReportHandler) Absentee(c *gin.Context) {
	req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}
	report, err := h.svc.Absentee(c.Request.Context(), currentDepartment(c), req)
	if err != nil {
		h.writeReportError(c, "absentee report", err)
		return
	}
	response.OK(c, report)
}

// ExportExcel GET /reports/summary/export/excel
func (h *ReportHandler) ExportExcel(c *gin.Context) {
	req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}
	data, filename, err := h.svc.ExportSummaryExcel(c.Request.Context(), currentDepartment(c), req)
	if err != nil {
		h.writeReportError(c, "excel export", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportPDF GET /reports/summary/export/pdf
func (h *ReportHandler) ExportPDF(c *gin.Context) {
	req, ok := h.bindReportRequest(c)
	if !ok {
		return
	}
	data, filename, err := h.svc.ExportSummaryPDF(c.Request.Context(), currentDepartment(c), req)
	if err != nil {
		h.writeReportError(c, "pdf export", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
