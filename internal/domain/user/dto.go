package user

import "github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	NIP      string `json:"nip"`
	Position string `json:"position"`
	WorkUnit string `json:"work_unit"`
	OrgUnit  string `json:"org_unit"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if !validator.IsEmpty(r.NIP) && !validator.IsValidNIP(r.NIP) {
		errs = append(errs, validator.ValidationError{
			Field:   "nip",
			Message: "nip must contain 18 digits",
		})
	}
	for field, value := range map[string]string{"position": r.Position, "work_unit": r.WorkUnit, "org_unit": r.OrgUnit} {
		if len(value) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not exceed 255 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	NIP           string  `json:"nip"`
	Position      string  `json:"position"`
	WorkUnit      string  `json:"work_unit"`
	OrgUnit       string  `json:"org_unit"`
	SignatureURL  *string `json:"signature_url"`
	EmailVerified bool    `json:"email_verified"`
}
