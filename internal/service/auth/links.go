package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
)

const (
	passwordResetTTL     = time.Hour
	emailVerificationTTL = 72 * time.Hour

	linkExpiryLayout = "02-01-2006 15:04 MST"
)

// newLinkToken returns 32 random bytes, URL safe.
func newLinkToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// issueLink stores a fresh token for u and returns the frontend link carrying it.
func (a *AuthServiceImpl) issueLink(ctx context.Context, u user.User, purpose auth.TokenPurpose, path string, ttl time.Duration) (string, time.Time, error) {
	token, err := newLinkToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate %s token: %w", purpose, err)
	}
	expiresAt := time.Now().Add(ttl)
	if err := a.linkTokens.Create(ctx, u.ID, purpose, token, expiresAt); err != nil {
		return "", time.Time{}, err
	}
	return a.frontendURL + path + "?token=" + url.QueryEscape(token), expiresAt, nil
}

func (a *AuthServiceImpl) sendEmailVerification(ctx context.Context, u user.User) error {
	link, expiresAt, err := a.issueLink(ctx, u, auth.PurposeEmailVerification, "/verify-email", emailVerificationTTL)
	if err != nil {
		return err
	}
	return a.mailer.SendEmailVerification(u.Email, u.Name, link, expiresAt.Format(linkExpiryLayout))
}

// ForgotPassword implements auth.AuthService.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	link, expiresAt, err := a.issueLink(ctx, userData, auth.PurposePasswordReset, "/reset-password", passwordResetTTL)
	if err != nil {
		return err
	}
	if err := a.mailer.SendPasswordReset(userData.Email, userData.Name, link, expiresAt.Format(linkExpiryLayout)); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// ResetPassword implements auth.AuthService. The token is burned together with
// the password update and every session of the user is revoked.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hashedPassword, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		userID, err := a.linkTokens.Consume(txCtx, auth.PurposePasswordReset, req.Token)
		if err != nil {
			return err
		}
		if err := a.UserRepository.UpdatePassword(txCtx, userID, hashedPassword); err != nil {
			return err
		}
		return a.RefreshTokenRepository.RevokeAllForUser(txCtx, userID)
	})
}

// VerifyEmail implements auth.AuthService.
func (a *AuthServiceImpl) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		userID, err := a.linkTokens.Consume(txCtx, auth.PurposeEmailVerification, req.Token)
		if err != nil {
			return err
		}
		return a.UserRepository.MarkEmailVerified(txCtx, userID)
	})
}
