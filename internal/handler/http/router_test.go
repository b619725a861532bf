package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/holiday"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/schedule"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/school"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxUpload = 1 << 20

// testServices holds the fakes behind a router built by newTestRouter. Each
// fake embeds its interface, so calling a method a test did not stub panics.
type testServices struct {
	auth     *fakeAuthService
	activity *fakeActivityService
	schedule *fakeScheduleService
	holiday  *fakeHolidayService
	profile  *fakeProfileService
	school   *fakeSchoolService
	report   *fakeReportService
}

type testEnv struct {
	router http.Handler
	jwt    jwt.Service
	svc    testServices
	token  string
}

func newTestRouter(t *testing.T) *testEnv {
	t.Helper()

	jwtService := jwt.NewJWTService("handler-test-secret", "1h", "24h")
	token, _, err := jwtService.GenerateAccessToken("user-1", "guru@example.com")
	require.NoError(t, err)

	svc := testServices{
		auth:     &fakeAuthService{},
		activity: &fakeActivityService{},
		schedule: &fakeScheduleService{},
		holiday:  &fakeHolidayService{},
		profile:  &fakeProfileService{},
		school:   &fakeSchoolService{},
		report:   &fakeReportService{},
	}

	router := NewRouter(
		RouterConfig{
			Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
			FrontendURL: "http://localhost:3000",
		},
		jwtService,
		Handlers{
			Auth:     NewAuthHandler(jwtService, svc.auth),
			Activity: NewActivityHandler(svc.activity),
			Schedule: NewScheduleHandler(svc.schedule),
			Holiday:  NewHolidayHandler(svc.holiday, testMaxUpload),
			Profile:  NewProfileHandler(svc.profile, testMaxUpload),
			School:   NewSchoolHandler(svc.school, testMaxUpload),
			Report:   NewReportHandler(svc.report),
		},
	)

	return &testEnv{router: router, jwt: jwtService, svc: svc, token: token}
}

// do sends req through the router with the test user's access token
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+e.token)
	return e.doAnonymous(req)
}

func (e *testEnv) doAnonymous(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type fakeAuthService struct {
	auth.AuthService
	loginErr  error
	loggedOut []string
	forgot    auth.ForgotPasswordRequest
	reset     auth.ResetPasswordRequest
	verified  auth.VerifyEmailRequest
	linkErr   error
}

func (f *fakeAuthService) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	f.forgot = req
	return nil
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	f.reset = req
	return f.linkErr
}

func (f *fakeAuthService) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) error {
	f.verified = req
	return f.linkErr
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{AccessToken: "access", RefreshToken: "refresh", AccessTokenExpiresIn: 1, RefreshTokenExpiresIn: 2}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, refreshToken)
	return nil
}

type fakeActivityService struct {
	activity.ActivityService
	created activity.CreateActivityRequest
	updated activity.UpdateActivityRequest
	filter  activity.ActivityFilter
	err     error
}

func (f *fakeActivityService) Create(ctx context.Context, req activity.CreateActivityRequest) (activity.ActivityResponse, error) {
	f.created = req
	if f.err != nil {
		return activity.ActivityResponse{}, f.err
	}
	return activity.ActivityResponse{ID: "act-1", Date: req.Date, Category: req.Category}, nil
}

func (f *fakeActivityService) List(ctx context.Context, filter activity.ActivityFilter) ([]activity.ActivityResponse, error) {
	f.filter = filter
	return []activity.ActivityResponse{}, f.err
}

func (f *fakeActivityService) GetByID(ctx context.Context, id string) (activity.ActivityResponse, error) {
	if f.err != nil {
		return activity.ActivityResponse{}, f.err
	}
	return activity.ActivityResponse{ID: id}, nil
}

func (f *fakeActivityService) Update(ctx context.Context, req activity.UpdateActivityRequest) (activity.ActivityResponse, error) {
	f.updated = req
	return activity.ActivityResponse{ID: req.ID}, f.err
}

type fakeScheduleService struct {
	schedule.ScheduleService
	deleted string
}

func (f *fakeScheduleService) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return nil
}

type fakeHolidayService struct {
	holiday.HolidayService
	imported string
	filter   holiday.HolidayFilter
	err      error
}

func (f *fakeHolidayService) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	return holiday.HolidayResponse{}, f.err
}

func (f *fakeHolidayService) List(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	f.filter = filter
	return []holiday.HolidayResponse{}, nil
}

func (f *fakeHolidayService) ImportICS(ctx context.Context, r io.Reader) (holiday.ImportResult, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return holiday.ImportResult{}, err
	}
	f.imported = string(body)
	if f.err != nil {
		return holiday.ImportResult{}, f.err
	}
	return holiday.ImportResult{Inserted: 1, Dates: []string{"2025-08-17"}}, nil
}

type fakeProfileService struct {
	user.ProfileService
	filename string
}

func (f *fakeProfileService) UploadSignature(ctx context.Context, file io.Reader, filename string) (user.ProfileResponse, error) {
	f.filename = filename
	return user.ProfileResponse{}, nil
}

type fakeSchoolService struct {
	school.SchoolService
	stampUploaded bool
}

func (f *fakeSchoolService) UploadStamp(ctx context.Context, file io.Reader, filename string) (school.SettingsResponse, error) {
	f.stampUploaded = true
	return school.SettingsResponse{}, nil
}

type fakeReportService struct {
	report.ReportService
	req report.MonthlyReportRequest
	err error
}

func (f *fakeReportService) GenerateMonthly(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	f.req = req
	if f.err != nil {
		return report.MonthlyReport{}, f.err
	}
	return report.MonthlyReport{Month: req.Month, Year: req.Year}, nil
}

func (f *fakeReportService) RenderMonthlyHTML(ctx context.Context, req report.MonthlyReportRequest) ([]byte, error) {
	f.req = req
	return []byte("<html>LCKH</html>"), f.err
}

func (f *fakeReportService) ExportMonthlyXLSX(ctx context.Context, req report.MonthlyReportRequest) ([]byte, error) {
	f.req = req
	return []byte("PK-xlsx"), f.err
}

func TestRouter_PublicEndpoints(t *testing.T) {
	env := newTestRouter(t)

	rec := env.doAnonymous(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.doAnonymous(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	env := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/categories",
		"/api/v1/activities",
		"/api/v1/schedules",
		"/api/v1/holidays",
		"/api/v1/profile",
		"/api/v1/school",
		"/api/v1/reports/monthly?month=8&year=2025",
	} {
		rec := env.doAnonymous(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
