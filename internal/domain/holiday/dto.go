package holiday

import (
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
)

type CreateHolidayRequest struct {
	Date string  `json:"date"`
	Note *string `json:"note"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HolidayFilter struct {
	Year int
}

func (f *HolidayFilter) Validate() error {
	if f.Year != 0 && (f.Year < 2000 || f.Year > 2100) {
		return validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		}}
	}
	return nil
}

type HolidayResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		Date:      h.Date,
		Note:      h.Note,
		CreatedAt: h.CreatedAt,
	}
}

// ImportResult summarises an iCalendar import
type ImportResult struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Dates    []string `json:"dates"`
}
