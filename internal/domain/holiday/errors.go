package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayDateExists = errors.New("Tanggal ini sudah ada")
	ErrInvalidCalendar   = errors.New("invalid iCalendar file")
)
