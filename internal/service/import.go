package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedImportFormat = errors.New("unsupported import format: expected .xlsx or .csv")
	ErrEmptyImportFile         = errors.New("import file contains no data rows")
)

// ImportTooLargeError rejects a sheet above the configured row bound.
type ImportTooLargeError struct {
	Rows, Max int
}

func (e *ImportTooLargeError) Error() string {
	return fmt.Sprintf("import file has %d rows, maximum is %d", e.Rows, e.Max)
}

// Canonical import column keys. Spreadsheets exported from different
// tools name these columns inconsistently; normalizeHeader folds the
// known variants onto one key each.
const (
	colRollNumber    = "roll_number"
	colName          = "name"
	colEmail         = "email"
	colPassword      = "password"
	colMobile        = "mobile"
	colParentContact = "parent_contact"
)

var headerAliases = map[string]string{
	"rollnumber":    colRollNumber,
	"rollno":        colRollNumber,
	"roll":          colRollNumber,
	"regno":         colRollNumber,
	"registerno":    colRollNumber,
	"name":          colName,
	"studentname":   colName,
	"fullname":      colName,
	"email":         colEmail,
	"emailid":       colEmail,
	"mail":          colEmail,
	"password":      colPassword,
	"mobile":        colMobile,
	"mobileno":      colMobile,
	"phone":         colMobile,
	"phoneno":       colMobile,
	"phonenumber":   colMobile,
	"parentcontact": colParentContact,
	"parentmobile":  colParentContact,
	"parentphone":   colParentContact,
	"parentno":      colParentContact,
}

// normalizeHeader maps a raw column header to its canonical key, or ""
// when the column is not recognized.
func normalizeHeader(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.', '/':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(raw)))
	return headerAliases[cleaned]
}

// importRow is one parsed data row; Index is 1-based over data rows so
// failure reports line up with what the uploader sees in their sheet.
type importRow struct {
	Index int
	Data  map[string]string
}

// parseImportFile reads an .xlsx or .csv roster sheet into rows keyed by
// canonical column names. The first row is the header; unrecognized
// columns are ignored.
func parseImportFile(filename string, r io.Reader) ([]importRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(r)
	case ".csv":
		return parseCSV(r)
	default:
		return nil, ErrUnsupportedImportFormat
	}
}

func parseXLSX(r io.Reader) ([]importRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyImportFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return rowsToRecords(rows)
}

func parseCSV(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, record)
	}
	return rowsToRecords(rows)
}

func rowsToRecords(rows [][]string) ([]importRow, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyImportFile
	}

	columns := make(map[int]string, len(rows[0]))
	for i, h := range rows[0] {
		if key := normalizeHeader(h); key != "" {
			columns[i] = key
		}
	}
	if len(columns) == 0 {
		return nil, ErrEmptyImportFile
	}

	records := make([]importRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		data := make(map[string]string, len(columns))
		empty := true
		for col, key := range columns {
			if col >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[col])
			if value != "" {
				empty = false
			}
			data[key] = value
		}
		if empty {
			continue
		}
		records = append(records, importRow{Index: i + 1, Data: data})
	}
	if len(records) == 0 {
		return nil, ErrEmptyImportFile
	}
	return records, nil
}
