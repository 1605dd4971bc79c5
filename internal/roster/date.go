package roster

import "time"

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MustParseDate parses a YYYY-MM-DD date and panics on failure. Intended for
// fixtures and tests.
func MustParseDate(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return t
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthsBetween returns the whole months elapsed from start to end, or zero
// when end is before start.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	months := (ey-sy)*12 + int(em-sm)
	if ed < sd {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// YearsBetween returns the whole years elapsed from start to end, or zero
// when end is before start.
func YearsBetween(start, end time.Time) int {
	return MonthsBetween(start, end) / 12
}

// IsFirstOfMonth reports whether t is the first day of its month.
func IsFirstOfMonth(t time.Time) bool {
	return t.Day() == 1
}
