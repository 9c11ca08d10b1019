// Package classid is the single place class identifiers and class field
// normalization are defined. Every write path derives class_id and
// class_assigned through this package; no handler or service assembles
// the composite strings on its own.
package classid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSection is assumed when a class context omits the section.
const DefaultSection = "A"

// Years are the canonical year labels accepted at the data-entry boundary.
var Years = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

var (
	batchRe    = regexp.MustCompile(`^\d{4}-\d{4}$`)
	digitRunRe = regexp.MustCompile(`\d+`)
)

// Key identifies one class roster.
type Key struct {
	Batch    string
	Year     string
	Semester int
	Section  string
}

// ClassID derives the composite key batch_year_semester_section.
func (k Key) ClassID() string {
	section := k.Section
	if section == "" {
		section = DefaultSection
	}
	return fmt.Sprintf("%s_%s_%d_%s", k.Batch, k.Year, k.Semester, section)
}

// ClassAssigned derives the human-readable class label.
func (k Key) ClassAssigned() string {
	section := k.Section
	if section == "" {
		section = DefaultSection
	}
	return fmt.Sprintf("%s - Sem %d - Section %s (%s)", k.Year, k.Semester, section, k.Batch)
}

// Parse splits a class_id string back into its key.
// Rejects anything with fewer than four underscore-separated parts.
func Parse(classID string) (Key, error) {
	parts := strings.Split(classID, "_")
	if len(parts) < 4 {
		return Key{}, fmt.Errorf("invalid class id %q: expected batch_year_semester_section", classID)
	}

	semester, ok := ParseSemester(parts[len(parts)-2])
	if !ok {
		return Key{}, fmt.Errorf("invalid class id %q: bad semester part", classID)
	}

	// year may itself contain underscores in legacy data; rejoin the middle
	year := strings.Join(parts[1:len(parts)-2], "_")

	return Key{
		Batch:    parts[0],
		Year:     year,
		Semester: semester,
		Section:  parts[len(parts)-1],
	}, nil
}

// ValidBatch reports whether a batch string has the YYYY-YYYY cohort form.
func ValidBatch(batch string) bool {
	return batchRe.MatchString(batch)
}

// ValidYear reports whether a year string is one of the canonical labels.
func ValidYear(year string) bool {
	for _, y := range Years {
		if y == year {
			return true
		}
	}
	return false
}

// ValidSemester reports whether a semester is in the 1..8 range.
func ValidSemester(semester int) bool {
	return semester >= 1 && semester <= 8
}

// NormalizeYear folds legacy year spellings ("1", "1st", "1st year") into
// the canonical label. Returns "" when no known pattern matches; callers
// treat that as a non-match rather than guessing.
func NormalizeYear(year string) string {
	s := strings.TrimSpace(year)
	if s == "" {
		return ""
	}
	for _, y := range Years {
		if strings.EqualFold(s, y) {
			return y
		}
	}
	run := digitRunRe.FindString(s)
	if run == "" {
		return ""
	}
	n, err := strconv.Atoi(run)
	if err != nil || n < 1 || n > len(Years) {
		return ""
	}
	return Years[n-1]
}

// ParseSemester extracts the semester number from legacy forms such as
// "3" or "Sem 3" by taking the first digit run. ok is false when nothing
// parseable or out of range is found.
func ParseSemester(s string) (int, bool) {
	run := digitRunRe.FindString(s)
	if run == "" {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil || !ValidSemester(n) {
		return 0, false
	}
	return n, true
}

// SameYear compares two year strings after normalization.
func SameYear(a, b string) bool {
	na, nb := NormalizeYear(a), NormalizeYear(b)
	return na != "" && na == nb
}
