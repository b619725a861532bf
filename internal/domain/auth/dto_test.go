package auth

import (
	"testing"

	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Name:            "Siti Aminah",
		Email:           "siti@madrasah.sch.id",
		Password:        "rahasia123",
		ConfirmPassword: "rahasia123",
	}
	assert.NoError(t, valid.Validate())

	bad := RegisterRequest{Email: "not-an-email", Password: "short", ConfirmPassword: "other"}
	err := bad.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "confirm_password")
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "guru@mail.com", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "", Password: ""}).Validate())
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	req := ChangePasswordRequest{CurrentPassword: "lama12345", NewPassword: "baru12345", ConfirmPassword: "baru12345"}
	assert.NoError(t, req.Validate())

	req.ConfirmPassword = "beda12345"
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Equal(t, "new_password and confirm_password do not match", verrs.ToMap()["confirm_password"])
}

func TestValidatePassword_MinimumSixCharacters(t *testing.T) {
	assert.Empty(t, validatePassword("password", "enam66"))

	errs := validatePassword("password", "lima5")
	require.Len(t, errs, 1)
	assert.Equal(t, "password must be at least 6 characters long", errs[0].Message)
}

func TestForgotPasswordRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ForgotPasswordRequest{Email: "guru@mail.com"}).Validate())
	assert.Error(t, (&ForgotPasswordRequest{Email: "guru"}).Validate())
}

func TestResetPasswordRequest_Validate(t *testing.T) {
	req := ResetPasswordRequest{Token: "abc", NewPassword: "baru66", ConfirmPassword: "baru66"}
	assert.NoError(t, req.Validate())

	bad := ResetPasswordRequest{NewPassword: "pendk", ConfirmPassword: "lain"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, bad.Validate(), &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "token")
	assert.Contains(t, fields, "new_password")
	assert.Contains(t, fields, "confirm_password")
}

func TestVerifyEmailRequest_Validate(t *testing.T) {
	assert.NoError(t, (&VerifyEmailRequest{Token: "abc"}).Validate())
	assert.Error(t, (&VerifyEmailRequest{}).Validate())
}
