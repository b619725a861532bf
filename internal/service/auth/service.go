package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/email"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	auth.RefreshTokenRepository
	linkTokens  auth.OneTimeTokenRepository
	mailer      email.EmailService
	frontendURL string
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	jwtService jwt.Service,
	refreshTokenRepository auth.RefreshTokenRepository,
	linkTokenRepository auth.OneTimeTokenRepository,
	mailer email.EmailService,
	frontendURL string,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		Service:                jwtService,
		RefreshTokenRepository: refreshTokenRepository,
		linkTokens:             linkTokenRepository,
		mailer:                 mailer,
		frontendURL:            strings.TrimRight(frontendURL, "/"),
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issueTokens signs an access/refresh pair and stores the refresh token hash.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	var err error

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.CreateRefreshToken(ctx, u.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}
	return tokenResponse, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	email := strings.ToLower(strings.TrimSpace(registerReq.Email))

	exists, err := a.UserRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, auth.ErrEmailExists
	}

	hashedPassword, err := a.hashPassword(registerReq.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	var newUser user.User
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		var err error
		newUser, err = a.UserRepository.Create(txCtx, user.User{
			Email:        email,
			PasswordHash: hashedPassword,
			Name:         strings.TrimSpace(registerReq.Name),
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return auth.ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		tokenResponse, err = a.issueTokens(txCtx, newUser, session)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	// the account is usable right away, a lost verification mail must not fail signup
	if err := a.sendEmailVerification(ctx, newUser); err != nil {
		slog.Warn("Failed to send verification email", "user_id", newUser.ID, "error", err)
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.TrimSpace(loginReq.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// 1. Verify signature, expiry and token type
	claimedUserID, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check DB for revocation/expiry (pass raw token, not hash)
	userID, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if userID != claimedUserID {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 3. Get user
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	// 4. Generate new access token
	var accessTokenResponse auth.AccessTokenResponse
	accessTokenResponse.AccessToken, accessTokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessTokenResponse, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, isRevoked, err := a.RefreshTokenRepository.IsRefreshTokenRevoked(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
	}
	if isRevoked {
		return nil
	}
	if err := a.RefreshTokenRepository.RevokeRefreshToken(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// ChangePassword implements auth.AuthService. Every session of the user is revoked afterwards.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrCurrentPasswordInvalid
	}

	hashedPassword, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if err := a.UserRepository.UpdatePassword(txCtx, userID, hashedPassword); err != nil {
			return err
		}
		return a.RefreshTokenRepository.RevokeAllForUser(txCtx, userID)
	})
}
