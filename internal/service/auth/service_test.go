package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type storedToken struct {
	userID  string
	revoked bool
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*storedToken{}}
}

func (f *fakeTokenRepo) CreateRefreshToken(ctx context.Context, userID, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &storedToken{userID: userID}
	return nil
}

func (f *fakeTokenRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return "", true, nil
	}
	return t.userID, t.revoked, nil
}

func (f *fakeTokenRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type linkToken struct {
	userID  string
	purpose auth.TokenPurpose
	used    bool
}

type fakeLinkTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*linkToken
}

func newFakeLinkTokenRepo() *fakeLinkTokenRepo {
	return &fakeLinkTokenRepo{tokens: map[string]*linkToken{}}
}

func (f *fakeLinkTokenRepo) Create(ctx context.Context, userID string, purpose auth.TokenPurpose, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &linkToken{userID: userID, purpose: purpose}
	return nil
}

func (f *fakeLinkTokenRepo) Consume(ctx context.Context, purpose auth.TokenPurpose, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok || t.used || t.purpose != purpose {
		return "", auth.ErrInvalidLinkToken
	}
	t.used = true
	return t.userID, nil
}

func (f *fakeLinkTokenRepo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type mail struct {
	to, name, link, expiresAt string
}

type fakeMailer struct {
	resets        []mail
	verifications []mail
	err           error
}

func (f *fakeMailer) SendPasswordReset(to, name, resetLink, expiresAt string) error {
	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, mail{to, name, resetLink, expiresAt})
	return nil
}

func (f *fakeMailer) SendEmailVerification(to, name, verifyLink, expiresAt string) error {
	if f.err != nil {
		return f.err
	}
	f.verifications = append(f.verifications, mail{to, name, verifyLink, expiresAt})
	return nil
}

// tokenFromLink returns the token query parameter of a mailed link.
func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newFakeService(t *testing.T) (auth.AuthService, *fakeTokenRepo) {
	t.Helper()
	users := &fakeUserRepo{users: map[string]user.User{
		"user-1": {ID: "user-1", Email: "guru@example.com", PasswordHash: hashed(t, "password123")},
	}}
	tokens := newFakeTokenRepo()
	svc := NewAuthService(nil, users, jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp), tokens,
		newFakeLinkTokenRepo(), &fakeMailer{}, "http://localhost:3000")
	return svc, tokens
}

var session = auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}

func TestAuthService_Login(t *testing.T) {
	svc, tokens := newFakeService(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		response, err := svc.Login(ctx, auth.LoginRequest{Email: "guru@example.com", Password: "password123"}, session)
		require.NoError(t, err)
		assert.NotEmpty(t, response.AccessToken)
		assert.NotEmpty(t, response.RefreshToken)
		assert.Greater(t, response.AccessTokenExpiresIn, int64(0))
		assert.Greater(t, response.RefreshTokenExpiresIn, response.AccessTokenExpiresIn)
		assert.Contains(t, tokens.tokens, response.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "guru@example.com", Password: "wrong-password"}, session)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}, session)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _ := newFakeService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "guru@example.com", Password: "password123"}, session)
	require.NoError(t, err)

	t.Run("issues a fresh access token", func(t *testing.T) {
		response, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, response.AccessToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("revoked after logout", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, login.RefreshToken))
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

		// logging out twice is fine
		assert.NoError(t, svc.Logout(ctx, login.RefreshToken))
	})
}

func TestAuthService_ChangePassword_RequiresAuthentication(t *testing.T) {
	svc, _ := newFakeService(t)
	err := svc.ChangePassword(context.Background(), auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "password456",
		ConfirmPassword: "password456",
	})
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, database.RunMigrations(db))
	_, err = db.Exec(context.Background(), "TRUNCATE TABLE one_time_tokens, refresh_tokens, users CASCADE")
	require.NoError(t, err)
	return db
}

func authedContext(t *testing.T, jwtService jwt.Service, userID string) context.Context {
	t.Helper()
	access, _, err := jwtService.GenerateAccessToken(userID, "")
	require.NoError(t, err)
	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), access)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestAuthService_RegisterAndChangePassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	svc := NewAuthService(db, postgresql.NewUserRepository(db), jwtService, postgresql.NewJWTRepository(db),
		postgresql.NewOneTimeTokenRepository(db), &fakeMailer{}, "http://localhost:3000")

	email := fmt.Sprintf("register-%d@example.com", time.Now().UnixNano())
	registerReq := auth.RegisterRequest{Name: "Siti", Email: email, Password: "password123", ConfirmPassword: "password123"}

	registered, err := svc.Register(ctx, registerReq, session)
	require.NoError(t, err)
	assert.NotEmpty(t, registered.RefreshToken)

	_, err = svc.Register(ctx, registerReq, session)
	assert.ErrorIs(t, err, auth.ErrEmailExists)

	userID, err := jwtService.ParseRefreshToken(registered.RefreshToken)
	require.NoError(t, err)
	authed := authedContext(t, jwtService, userID)

	err = svc.ChangePassword(authed, auth.ChangePasswordRequest{CurrentPassword: "wrong-pass", NewPassword: "password456", ConfirmPassword: "password456"})
	assert.ErrorIs(t, err, auth.ErrCurrentPasswordInvalid)

	err = svc.ChangePassword(authed, auth.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456", ConfirmPassword: "password456"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: email, Password: "password123"}, session)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: email, Password: "password456"}, session)
	assert.NoError(t, err)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	newService := func(mailer *fakeMailer) (auth.AuthService, *fakeLinkTokenRepo) {
		users := &fakeUserRepo{users: map[string]user.User{
			"user-1": {ID: "user-1", Name: "Siti", Email: "guru@example.com"},
		}}
		links := newFakeLinkTokenRepo()
		jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
		return NewAuthService(nil, users, jwtService, newFakeTokenRepo(), links, mailer, "http://localhost:3000/"), links
	}

	t.Run("known email gets a single-use reset link", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc, links := newService(mailer)

		require.NoError(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "Guru@Example.com"}))

		require.Len(t, mailer.resets, 1)
		sent := mailer.resets[0]
		assert.Equal(t, "guru@example.com", sent.to)
		assert.Equal(t, "Siti", sent.name)
		assert.True(t, strings.HasPrefix(sent.link, "http://localhost:3000/reset-password?token="), sent.link)
		assert.NotEmpty(t, sent.expiresAt)

		token := tokenFromLink(t, sent.link)
		require.Contains(t, links.tokens, token)
		assert.Equal(t, "user-1", links.tokens[token].userID)
		assert.Equal(t, auth.PurposePasswordReset, links.tokens[token].purpose)
	})

	t.Run("unknown email is silent", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc, links := newService(mailer)

		require.NoError(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "nobody@example.com"}))
		assert.Empty(t, mailer.resets)
		assert.Empty(t, links.tokens)
	})

	t.Run("mail failure is reported", func(t *testing.T) {
		svc, _ := newService(&fakeMailer{err: errors.New("smtp down")})

		err := svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "guru@example.com"})
		assert.ErrorContains(t, err, "smtp down")
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		svc, _ := newService(&fakeMailer{})
		assert.Error(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: "guru"}))
	})
}

func TestAuthService_ResetPassword_Validation(t *testing.T) {
	svc, _ := newFakeService(t)

	err := svc.ResetPassword(context.Background(), auth.ResetPasswordRequest{Token: "abc", NewPassword: "pendk", ConfirmPassword: "pendk"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "new_password must be at least 6 characters long", verrs.ToMap()["new_password"])
}

func TestAuthService_VerifyEmail_RequiresToken(t *testing.T) {
	svc, _ := newFakeService(t)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, svc.VerifyEmail(context.Background(), auth.VerifyEmailRequest{}), &verrs)
	assert.Contains(t, verrs.ToMap(), "token")
}

func TestAuthService_ResetPasswordAndVerifyEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mailer := &fakeMailer{}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	userRepo := postgresql.NewUserRepository(db)
	svc := NewAuthService(db, userRepo, jwtService, postgresql.NewJWTRepository(db),
		postgresql.NewOneTimeTokenRepository(db), mailer, "http://localhost:3000")

	email := fmt.Sprintf("reset-%d@example.com", time.Now().UnixNano())
	registered, err := svc.Register(ctx, auth.RegisterRequest{Name: "Siti", Email: email, Password: "lama66", ConfirmPassword: "lama66"}, session)
	require.NoError(t, err)

	require.Len(t, mailer.verifications, 1)
	verifyLink := mailer.verifications[0].link
	assert.True(t, strings.HasPrefix(verifyLink, "http://localhost:3000/verify-email?token="), verifyLink)

	userID, err := jwtService.ParseRefreshToken(registered.RefreshToken)
	require.NoError(t, err)

	t.Run("verify email", func(t *testing.T) {
		verifyToken := tokenFromLink(t, verifyLink)
		require.NoError(t, svc.VerifyEmail(ctx, auth.VerifyEmailRequest{Token: verifyToken}))

		u, err := userRepo.GetByID(ctx, userID)
		require.NoError(t, err)
		assert.NotNil(t, u.EmailVerifiedAt)

		assert.ErrorIs(t, svc.VerifyEmail(ctx, auth.VerifyEmailRequest{Token: verifyToken}), auth.ErrInvalidLinkToken)
	})

	t.Run("reset password", func(t *testing.T) {
		require.NoError(t, svc.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: email}))
		require.Len(t, mailer.resets, 1)
		resetToken := tokenFromLink(t, mailer.resets[0].link)

		err := svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: "bogus", NewPassword: "baru66", ConfirmPassword: "baru66"})
		assert.ErrorIs(t, err, auth.ErrInvalidLinkToken)

		require.NoError(t, svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: resetToken, NewPassword: "baru66", ConfirmPassword: "baru66"}))

		err = svc.ResetPassword(ctx, auth.ResetPasswordRequest{Token: resetToken, NewPassword: "lagi66", ConfirmPassword: "lagi66"})
		assert.ErrorIs(t, err, auth.ErrInvalidLinkToken)

		_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

		_, err = svc.Login(ctx, auth.LoginRequest{Email: email, Password: "lama66"}, session)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, err = svc.Login(ctx, auth.LoginRequest{Email: email, Password: "baru66"}, session)
		assert.NoError(t, err)
	})
}
