package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dushyanth88/Attendance-project-sub001/internal/classid"
	"github.com/dushyanth88/Attendance-project-sub001/internal/dto"
	"github.com/dushyanth88/Attendance-project-sub001/internal/model"
	"github.com/dushyanth88/Attendance-project-sub001/internal/repository"
)

// ReportService aggregates attendance over date ranges and renders the
// export formats. OD days count as attended in every percentage.
type ReportService interface {
	Summary(ctx context.Context, department string, req *dto.ReportRequest) (*dto.SummaryReportResponse, error)
	Detailed(ctx context.Context, department string, req *dto.ReportRequest) (*dto.DetailedReportResponse, error)
	Absentee(ctx context.Context, department string, req *dto.ReportRequest) (*dto.AbsenteeReportResponse, error)

	// ExportSummaryExcel renders the summary as a workbook. Returns the
	// file bytes and a download filename.
	ExportSummaryExcel(ctx context.Context, department string, req *dto.ReportRequest) ([]byte, string, error)
	// ExportSummaryPDF renders the summary as a printable sheet.
	ExportSummaryPDF(ctx context.Context, department string, req *dto.ReportRequest) ([]byte, string, error)
}

type reportService struct {
	repo       *repository.Repository
	holidaySvc HolidayService
	logger     *zap.Logger
}

// NewReportService creates the ReportService.
func NewReportService(repo *repository.Repository, holidaySvc HolidayService, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, holidaySvc: holidaySvc, logger: logger}
}

// ledger is the raw material every report is computed from.
type ledger struct {
	key          classid.Key
	from, to     time.Time
	students     []model.Student
	workingDates []time.Time
	// statusByStudentDate[studentID][YYYY-MM-DD] = status
	statusByStudentDate map[string]map[string]string
}

func (s *reportService) buildLedger(ctx context.Context, department string, req *dto.ReportRequest) (*ledger, error) {
	if !classid.ValidBatch(req.Batch) || !classid.ValidYear(req.Year) || !classid.ValidSemester(req.Semester) {
		return nil, ErrInvalidClassFields
	}
	section := req.Section
	if section == "" {
		section = classid.DefaultSection
	}
	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	key := classid.Key{Batch: req.Batch, Year: req.Year, Semester: req.Semester, Section: section}

	students, err := s.repo.Student.ListByClass(ctx, key.ClassID())
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}

	// Working days: every day in range that is neither a Sunday nor a
	// declared holiday for the department.
	holidays, err := s.repo.Holiday.ListByDepartment(ctx, department, &from, &to)
	if err != nil {
		return nil, err
	}
	holidaySet := make(map[string]bool, len(holidays))
	for i := range holidays {
		holidaySet[formatDay(holidays[i].HolidayDate)] = true
	}

	var workingDates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday || holidaySet[formatDay(d)] {
			continue
		}
		workingDates = append(workingDates, d)
	}

	records, err := s.repo.Attendance.ListByClassRange(ctx, req.Batch, req.Year, req.Semester, section, from, to)
	if err != nil {
		return nil, err
	}
	statusByStudentDate := make(map[string]map[string]string, len(students))
	for i := range records {
		r := &records[i]
		byDate := statusByStudentDate[r.StudentID]
		if byDate == nil {
			byDate = make(map[string]string)
			statusByStudentDate[r.StudentID] = byDate
		}
		byDate[formatDay(r.Date)] = r.Status
	}

	return &ledger{
		key:                 key,
		from:                from,
		to:                  to,
		students:            students,
		workingDates:        workingDates,
		statusByStudentDate: statusByStudentDate,
	}, nil
}

// ────────────────────── Summary ──────────────────────

func (s *reportService) Summary(ctx context.Context, department string, req *dto.ReportRequest) (*dto.SummaryReportResponse, error) {
	led, err := s.buildLedger(ctx, department, req)
	if err != nil {
		return nil, err
	}

	workingDays := len(led.workingDates)
	rows := make([]dto.SummaryRow, 0, len(led.students))
	for i := range led.students {
		st := &led.students[i]
		row := dto.SummaryRow{
			RollNumber:  st.RollNumber,
			Name:        st.Name,
			WorkingDays: workingDays,
		}
		byDate := led.statusByStudentDate[st.StudentID]
		for _, d := range led.workingDates {
			switch byDate[formatDay(d)] {
			case model.AttendancePresent:
				row.Present++
			case model.AttendanceAbsent:
				row.Absent++
			case model.AttendanceOD:
				row.OD++
			}
		}
		if workingDays > 0 {
			row.Percentage = math.Round(float64(row.Present+row.OD)/float64(workingDays)*10000) / 100
		}
		rows = append(rows, row)
	}

	return &dto.SummaryReportResponse{
		ClassID:     led.key.ClassID(),
		From:        req.From,
		To:          req.To,
		WorkingDays: workingDays,
		Rows:        rows,
	}, nil
}

// ────────────────────── Detailed ──────────────────────

func (s *reportService) Detailed(ctx context.Context, department string, req *dto.ReportRequest) (*dto.DetailedReportResponse, error) {
	led, err := s.buildLedger(ctx, department, req)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(led.workingDates))
	for _, d := range led.workingDates {
		dates = append(dates, formatDay(d))
	}

	rows := make([]dto.DetailedRow, 0, len(led.students))
	for i := range led.students {
		st := &led.students[i]
		byDate := led.statusByStudentDate[st.StudentID]
		days := make([]dto.DetailedCell, 0, len(dates))
		for _, d := range dates {
			status := byDate[d]
			if status == "" {
				status = "-" // not marked
			}
			days = append(days, dto.DetailedCell{Date: d, Status: status})
		}
		rows = append(rows, dto.DetailedRow{RollNumber: st.RollNumber, Name: st.Name, Days: days})
	}

	return &dto.DetailedReportResponse{
		ClassID: led.key.ClassID(),
		From:    req.From,
		To:      req.To,
		Dates:   dates,
		Rows:    rows,
	}, nil
}

// ────────────────────── Absentee ──────────────────────

func (s *reportService) Absentee(ctx context.Context, department string, req *dto.ReportRequest) (*dto.AbsenteeReportResponse, error) {
	led, err := s.buildLedger(ctx, department, req)
	if err != nil {
		return nil, err
	}

	days := make([]dto.AbsenteeDay, 0, len(led.workingDates))
	for _, d := range led.workingDates {
		day := dto.AbsenteeDay{Date: formatDay(d), Absent: []string{}, OD: []string{}}
		for i := range led.students {
			st := &led.students[i]
			switch led.statusByStudentDate[st.StudentID][day.Date] {
			case model.AttendanceAbsent:
				day.Absent = append(day.Absent, st.RollNumber)
			case model.AttendanceOD:
				day.OD = append(day.OD, st.RollNumber)
			}
		}
		days = append(days, day)
	}

	return &dto.AbsenteeReportResponse{
		ClassID: led.key.ClassID(),
		From:    req.From,
		To:      req.To,
		Days:    days,
	}, nil
}

// ────────────────────── exports ──────────────────────

var summaryHeader = []string{"Roll Number", "Name", "Present", "Absent", "OD", "Working Days", "Percentage"}

func (s *reportService) ExportSummaryExcel(ctx context.Context, department string, req *dto.ReportRequest) ([]byte, string, error) {
	report, err := s.Summary(ctx, department, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	title := fmt.Sprintf("%s  (%s to %s)", report.ClassID, report.From, report.To)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, "", err
	}
	for col, h := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", err
		}
	}
	for rowIdx, row := range report.Rows {
		values := []interface{}{row.RollNumber, row.Name, row.Present, row.Absent, row.OD, row.WorkingDays, row.Percentage}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+3)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		s.logger.Error("excel export failed", zap.String("class_id", report.ClassID), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", report.ClassID, report.From, report.To)
	return buf.Bytes(), filename, nil
}

func (s *reportService) ExportSummaryPDF(ctx context.Context, department string, req *dto.ReportRequest) ([]byte, string, error) {
	report, err := s.Summary(ctx, department, req)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Attendance Summary")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("%s  |  %s to %s  |  working days: %d", report.ClassID, report.From, report.To, report.WorkingDays))
	pdf.Ln(12)

	widths := []float64{30, 55, 18, 18, 15, 28, 26}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range summaryHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range report.Rows {
		cells := []string{
			row.RollNumber,
			row.Name,
			fmt.Sprintf("%d", row.Present),
			fmt.Sprintf("%d", row.Absent),
			fmt.Sprintf("%d", row.OD),
			fmt.Sprintf("%d", row.WorkingDays),
			fmt.Sprintf("%.2f%%", row.Percentage),
		}
		for i, c := range cells {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("pdf export failed", zap.String("class_id", report.ClassID), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.pdf", report.ClassID, report.From, report.To)
	return buf.Bytes(), filename, nil
}
