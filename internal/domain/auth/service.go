package auth

import (
	"context"
	"time"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	// ForgotPassword mails a reset link; unknown emails are ignored silently
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) error
}

// TokenPurpose says what a one-time link token may be used for
type TokenPurpose string

const (
	PurposePasswordReset     TokenPurpose = "password_reset"
	PurposeEmailVerification TokenPurpose = "email_verification"
)

// OneTimeTokenRepository stores hashed single-use tokens sent out in email links
type OneTimeTokenRepository interface {
	// Create stores token and retires the unused tokens of the same user and purpose
	Create(ctx context.Context, userID string, purpose TokenPurpose, token string, expiresAt time.Time) error
	// Consume marks token used and returns its owner. Unknown, used and expired
	// tokens yield ErrInvalidLinkToken.
	Consume(ctx context.Context, purpose TokenPurpose, token string) (userID string, err error)
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// RefreshTokenRepository persists hashed refresh tokens so they can be revoked
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session SessionTrackingRequest) error
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID string, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	// DeleteStale removes tokens that expired or were revoked before the cutoff
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
