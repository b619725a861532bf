package response

import (
	"errors"
	"net/http"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/holiday"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/schedule"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/school"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/storage"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/lckh-guru/lckh-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrCurrentPasswordInvalid):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrInvalidLinkToken):
		BadRequest(w, "Link is invalid or has expired, please request a new one", nil)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Activity domain errors
	case errors.Is(err, activity.ErrActivityNotFound):
		NotFound(w, "Activity not found")
	case errors.Is(err, activity.ErrFullDayConflict):
		Conflict(w, "A full-day activity already exists on this date")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule entry not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, holiday.ErrHolidayDateExists.Error())
	case errors.Is(err, holiday.ErrInvalidCalendar):
		BadRequest(w, err.Error(), nil)

	// School domain errors
	case errors.Is(err, school.ErrSettingsNotFound):
		NotFound(w, "School settings not found")

	// Upload errors
	case errors.Is(err, file.ErrUnsupportedImage), errors.Is(err, file.ErrImageTooLarge):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
