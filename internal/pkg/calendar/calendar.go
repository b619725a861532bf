// Package calendar holds the date helpers shared by the activity log and the
// monthly report. Dates are civil dates: every value returned here sits at
// midnight of the caller's location, never at UTC midnight.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the YYYY-MM-DD layout dates are stored and exchanged in
const DateLayout = "2006-01-02"

var dayNames = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var workdayNames = map[int]string{1: "Senin", 2: "Selasa", 3: "Rabu", 4: "Kamis", 5: "Jumat"}

// ParseLocalDate parses YYYY-MM-DD as midnight in loc.
// Anything after the date part (e.g. a "T00:00:00Z" suffix) is ignored.
func ParseLocalDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Date returns midnight of the given civil date in loc.
func Date(year int, month time.Month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// DateKey formats t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDate renders YYYY-MM-DD as DD/MM/YYYY. Unparseable input is returned as is.
func FormatDate(s string) string {
	t, err := ParseLocalDate(s, time.UTC)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

// FormatLongDate renders YYYY-MM-DD as "17 Agustus 2024". Unparseable input is returned as is.
func FormatLongDate(s string) string {
	t, err := ParseLocalDate(s, time.UTC)
	if err != nil {
		return s
	}
	return LongDate(t)
}

// LongDate renders t as "17 Agustus 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}

// DayName returns the Indonesian day name, 0=Minggu..6=Sabtu.
func DayName(weekday time.Weekday) string {
	if weekday < 0 || int(weekday) >= len(dayNames) {
		return "-"
	}
	return dayNames[weekday]
}

// DayNameOf returns the day name of a YYYY-MM-DD string, or "-" when it cannot be parsed.
func DayNameOf(s string) string {
	t, err := ParseLocalDate(s, time.UTC)
	if err != nil {
		return "-"
	}
	return DayName(t.Weekday())
}

// MonthName returns the Indonesian month name for month 1..12.
func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return "-"
	}
	return monthNames[month-1]
}

// WorkdayName maps schedule weekday numbers 1..5 to Senin..Jumat.
func WorkdayName(weekday int) string {
	if name, ok := workdayNames[weekday]; ok {
		return name
	}
	return "-"
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Sunday || day == time.Saturday
}

// ISOWeekday returns 1=Monday..7=Sunday.
func ISOWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the half-open range [first of month, first of next month).
func MonthRange(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = Date(year, month, 1, loc)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// LastDayOfMonth returns midnight of the final calendar day of month.
func LastDayOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return Date(year, month, DaysInMonth(year, month), loc)
}
