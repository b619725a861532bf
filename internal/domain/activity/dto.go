package activity

import (
	"strings"
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// DefaultVolume is applied when a form omits the volume
var DefaultVolume = decimal.NewFromInt(1)

type CreateActivityRequest struct {
	Date        string           `json:"date"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Output      string           `json:"output"`
	Volume      *decimal.Decimal `json:"volume"`
	Unit        string           `json:"unit"`
	FullDay     bool             `json:"full_day"`
}

func (r *CreateActivityRequest) Validate() error {
	errs := validateFields(r.Date, r.Category, r.Description, r.Output, r.Unit, r.Volume)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// VolumeOrDefault returns the requested volume, or DefaultVolume when omitted
func (r *CreateActivityRequest) VolumeOrDefault() decimal.Decimal {
	if r.Volume == nil {
		return DefaultVolume
	}
	return *r.Volume
}

type UpdateActivityRequest struct {
	ID          string           `json:"-"`
	Date        string           `json:"date"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Output      string           `json:"output"`
	Volume      *decimal.Decimal `json:"volume"`
	Unit        string           `json:"unit"`
	FullDay     bool             `json:"full_day"`
}

func (r *UpdateActivityRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	errs = append(errs, validateFields(r.Date, r.Category, r.Description, r.Output, r.Unit, r.Volume)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateActivityRequest) VolumeOrDefault() decimal.Decimal {
	if r.Volume == nil {
		return DefaultVolume
	}
	return *r.Volume
}

func validateFields(date, category, description, output, unit string, volume *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	} else if !Category(category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: " + strings.Join(CategoryValues(), ", "),
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
	if len(unit) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "unit",
			Message: "unit must not exceed 50 characters",
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

type ActivityFilter struct {
	Month    int
	Year     int
	Category string
	Search   string
}

func (f *ActivityFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != 0 || f.Year != 0 {
		if f.Month < 1 || f.Month > 12 {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be between 1 and 12",
			})
		}
		if f.Year < 2000 || f.Year > 2100 {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year must be between 2000 and 2100",
			})
		}
	}
	if f.Category != "" && !Category(f.Category).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "unknown category",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ActivityResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Output      string          `json:"output"`
	Volume      decimal.Decimal `json:"volume"`
	Unit        string          `json:"unit"`
	FullDay     bool            `json:"full_day"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewActivityResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Date:        a.Date,
		Category:    string(a.Category),
		Description: a.Description,
		Output:      a.Output,
		Volume:      a.Volume,
		Unit:        a.Unit,
		FullDay:     a.FullDay,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type CategoryResponse struct {
	Name         string `json:"name"`
	BuktiDokumen string `json:"bukti_dokumen"`
}

// ListCategories returns the categories with their proof documents, in recap order
func ListCategories() []CategoryResponse {
	out := make([]CategoryResponse, len(Categories))
	for i, c := range Categories {
		out[i] = CategoryResponse{Name: string(c), BuktiDokumen: c.BuktiDokumen()}
	}
	return out
}
