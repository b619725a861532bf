package school

import (
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
)

type UpsertSettingsRequest struct {
	SchoolName    string `json:"school_name"`
	PrincipalName string `json:"principal_name"`
	PrincipalNIP  string `json:"principal_nip"`
	City          string `json:"city"`
}

func (r *UpsertSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SchoolName) {
		errs = append(errs, validator.ValidationError{
			Field:   "school_name",
			Message: "school_name is required",
		})
	}
	if validator.IsEmpty(r.PrincipalName) {
		errs = append(errs, validator.ValidationError{
			Field:   "principal_name",
			Message: "principal_name is required",
		})
	}
	if !validator.IsEmpty(r.PrincipalNIP) && !validator.IsValidNIP(r.PrincipalNIP) {
		errs = append(errs, validator.ValidationError{
			Field:   "principal_nip",
			Message: "principal_nip must contain 18 digits",
		})
	}
	if len(r.City) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "city",
			Message: "city must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingsResponse struct {
	SchoolName            string     `json:"school_name"`
	PrincipalName         string     `json:"principal_name"`
	PrincipalNIP          string     `json:"principal_nip"`
	City                  string     `json:"city"`
	PrincipalSignatureURL *string    `json:"principal_signature_url"`
	StampURL              *string    `json:"stamp_url"`
	UpdatedAt             *time.Time `json:"updated_at"`
}
