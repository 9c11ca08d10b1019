package service

import "time"

// dateLayout is the calendar-date wire format used everywhere a date
// crosses the API boundary. Attendance dates carry no time component.
const dateLayout = "2006-01-02"

// parseDay parses a YYYY-MM-DD string into a midnight UTC time.
func parseDay(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// formatDay renders a date in the wire format.
func formatDay(t time.Time) string {
	return t.Format(dateLayout)
}

// sameDay compares calendar dates ignoring any time component.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// truncateDay drops the time component.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
