package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/service"
	"github.com/dushyanth88/Attendance-project-sub001/pkg/response"
)

// StudentHandler serves /students: admission, bulk import and roster.
type StudentHandler struct {
	svc    service.StudentService
	logger *zap.Logger
}

// Create POST /students
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	student, err := h.svc.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			response.Error(c, http.StatusConflict, 13001, "email is already registered")
		case errors.Is(err, service.ErrDuplicateRollNumber):
			response.Error(c, http.StatusConflict, 13002, "roll number is already registered for this batch and department")
		case errors.Is(err, service.ErrDuplicateMobile):
			response.Error(c, http.StatusConflict, 13003, "mobile number is already registered")
		case errors.Is(err, service.ErrNoFacultyFound):
			response.NotFound(c, 14001, "no valid faculty found for this class")
		case errors.Is(err, service.ErrInvalidClassFields):
			response.BadRequest(c, 10001, "invalid class fields")
		default:
			h.logger.Error("create student failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.Created(c, student)
}

// BulkImport POST /students/bulk-import (multipart form)
// Fields: batch, year, semester, section, department + file.
func (h *StudentHandler) BulkImport(c *gin.Context) {
	semester, err := strconv.Atoi(c.PostForm("semester"))
	if err != nil {
		response.BadRequest(c, 10001, "semester must be a number")
		return
	}
	class := service.ClassContext{
		Batch:      c.PostForm("batch"),
		Year:       c.PostForm("year"),
		Semester:   semester,
		Section:    c.PostForm("section"),
		Department: c.PostForm("department"),
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "missing import file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("open upload failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	defer file.Close()

	result, err := h.svc.BulkImport(c.Request.Context(), currentUserID(c), class, fileHeader.Filename, file)
	if err != nil {
		var tooLarge *service.ImportTooLargeError
		switch {
		case errors.Is(err, service.ErrUnsupportedImportFormat):
			response.BadRequest(c, 13005, "unsupported import format: expected .xlsx or .csv")
		case errors.Is(err, service.ErrEmptyImportFile):
			response.BadRequest(c, 13006, "import file contains no data rows")
		case errors.As(err, &tooLarge):
			response.BadRequest(c, 13007, tooLarge.Error())
		case errors.Is(err, service.ErrNoFacultyFound):
			response.NotFound(c, 14001, "no valid faculty found for this class")
		case errors.Is(err, service.ErrInvalidClassFields):
			response.BadRequest(c, 10001, "invalid class fields")
		default:
			h.logger.Error("bulk import failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Get GET /students/:id
// Student-role callers may only read their own record.
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 13004, "student not found")
			return
		}
		h.logger.Error("get student failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	if currentRole(c) == model.RoleStudent && student.UserID != currentUserID(c) {
		response.Forbidden(c, 10003, "students may only access their own record")
		return
	}
	response.OK(c, student)
}

// List GET /students
func (h *StudentHandler) List(c *gin.Context) {
	var req dto.StudentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	students, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("list students failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OKPage(c, students, total, req.GetPage(), req.GetPageSize())
}

// Update PUT /students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	student, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req, currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 13004, "student not found")
		case errors.Is(err, service.ErrDuplicateMobile):
			response.Error(c, http.StatusConflict, 13003, "mobile number is already registered")
		default:
			h.logger.Error("update student failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}
	response.OK(c, student)
}

// Delete DELETE /students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 13004, "student not found")
			return
		}
		h.logger.Error("delete student failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"message": "student deleted"})
}
