package schedule

import (
	"strings"
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/calendar"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateScheduleRequest struct {
	Weekday     int              `json:"weekday"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Output      string           `json:"output"`
	Volume      *decimal.Decimal `json:"volume"`
	Unit        string           `json:"unit"`
}

func (r *CreateScheduleRequest) Validate() error {
	errs := validateFields(r.Weekday, r.Category, r.Description, r.Output, r.Unit, r.Volume)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateScheduleRequest) VolumeOrDefault() decimal.Decimal {
	if r.Volume == nil {
		return activity.DefaultVolume
	}
	return *r.Volume
}

type UpdateScheduleRequest struct {
	ID          string           `json:"-"`
	Weekday     int              `json:"weekday"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Output      string           `json:"output"`
	Volume      *decimal.Decimal `json:"volume"`
	Unit        string           `json:"unit"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	errs = append(errs, validateFields(r.Weekday, r.Category, r.Description, r.Output, r.Unit, r.Volume)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateScheduleRequest) VolumeOrDefault() decimal.Decimal {
	if r.Volume == nil {
		return activity.DefaultVolume
	}
	return *r.Volume
}

func validateFields(weekday int, category, description, output, unit string, volume *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if weekday < 1 || weekday > 5 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be between 1 (Senin) and 5 (Jumat)",
		})
	}
	if validator.IsEmpty(category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	} else if !activity.Category(category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: " + strings.Join(activity.CategoryValues(), ", "),
		})
	}
	if validator.IsEmpty(description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if validator.IsEmpty(output) {
		errs = append(errs, validator.ValidationError{
			Field:   "output",
			Message: "output is required",
		})
	}
	if validator.IsEmpty(unit) {
		errs = append(errs, validator.ValidationError{
			Field:   "unit",
			Message: "unit is required",
		})
	}
	if volume != nil && !validator.IsNonNegative(*volume) {
		errs = append(errs, validator.ValidationError{
			Field:   "volume",
			Message: "volume must not be negative",
		})
	}

	return errs
}

type ScheduleResponse struct {
	ID          string          `json:"id"`
	Weekday     int             `json:"weekday"`
	WeekdayName string          `json:"weekday_name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Output      string          `json:"output"`
	Volume      decimal.Decimal `json:"volume"`
	Unit        string          `json:"unit"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewScheduleResponse(e Entry) ScheduleResponse {
	return ScheduleResponse{
		ID:          e.ID,
		Weekday:     e.Weekday,
		WeekdayName: calendar.WorkdayName(e.Weekday),
		Category:    string(e.Category),
		Description: e.Description,
		Output:      e.Output,
		Volume:      e.Volume,
		Unit:        e.Unit,
		CreatedAt:   e.CreatedAt,
	}
}
