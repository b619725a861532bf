package auth

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked    = errors.New("refresh token has been revoked")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrEmailExists            = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrCurrentPasswordInvalid = errors.New("current password is incorrect")
	ErrInvalidLinkToken       = errors.New("link is invalid or has expired")
)
