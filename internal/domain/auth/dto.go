package auth

import (
	"fmt"

	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
)

// MinPasswordLength is the shortest password accepted on register, change and reset
const MinPasswordLength = 6

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
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

	errs = append(errs, validateEmail(r.Email)...)
	errs = append(errs, validatePassword("password", r.Password)...)

	if validator.IsEmpty(r.ConfirmPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "confirm_password is required",
		})
	} else if r.ConfirmPassword != r.Password {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateEmail(r.Email)...)
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		})
	}
	if len(r.RefreshToken) > 1024 {
		errs = append(errs, validator.ValidationError{
			Field:   "refresh_token",
			Message: "refresh_token must not exceed 1024 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}
	errs = append(errs, validatePassword("new_password", r.NewPassword)...)
	if r.ConfirmPassword != r.NewPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "new_password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateEmail(email string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
		return errs
	}
	if len(email) > 254 {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must not exceed 254 characters",
		})
	}
	if !validator.IsValidEmail(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address, e.g. guru@madrasah.sch.id",
		})
	}
	return errs
}

func validatePassword(field, password string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(password) {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	} else if len(password) < MinPasswordLength {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at least %d characters long", field, MinPasswordLength),
		})
	} else if len(password) > 72 {
		// bcrypt ignores everything past 72 bytes
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " must not exceed 72 characters",
		})
	}
	return errs
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	if errs := validateEmail(r.Email); len(errs) > 0 {
		return errs
	}
	return nil
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateLinkToken(r.Token)...)
	errs = append(errs, validatePassword("new_password", r.NewPassword)...)
	if r.ConfirmPassword != r.NewPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "new_password and confirm_password do not match",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VerifyEmailRequest struct {
	Token string `json:"token"`
}

func (r *VerifyEmailRequest) Validate() error {
	if errs := validateLinkToken(r.Token); len(errs) > 0 {
		return errs
	}
	return nil
}

func validateLinkToken(token string) validator.ValidationErrors {
	if validator.IsEmpty(token) {
		return validator.ValidationErrors{{Field: "token", Message: "token is required"}}
	}
	if len(token) > 256 {
		return validator.ValidationErrors{{Field: "token", Message: "token must not exceed 256 characters"}}
	}
	return nil
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
