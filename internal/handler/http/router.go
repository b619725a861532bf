package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/middleware"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the settings the router needs from the application config
type RouterConfig struct {
	Logger      *slog.Logger
	FrontendURL string
	UploadsDir  string
}

// Handlers groups every HTTP handler mounted by NewRouter
type Handlers struct {
	Auth     AuthHandler
	Activity ActivityHandler
	Schedule ScheduleHandler
	Holiday  HolidayHandler
	Profile  ProfileHandler
	School   SchoolHandler
	Report   ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	if cfg.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)
			r.Post("/verify-email", h.Auth.VerifyEmail)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Put("/auth/password", h.Auth.ChangePassword)

			r.Get("/categories", h.Activity.ListCategories)

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", h.Activity.List)
				r.Post("/", h.Activity.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Activity.Get)
					r.Put("/", h.Activity.Update)
					r.Delete("/", h.Activity.Delete)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.Schedule.List)
				r.Post("/", h.Schedule.Create)
				r.Put("/{id}", h.Schedule.Update)
				r.Delete("/{id}", h.Schedule.Delete)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Post("/", h.Holiday.Create)
				r.Post("/import", h.Holiday.Import)
				r.Delete("/{id}", h.Holiday.Delete)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile.Get)
				r.Put("/", h.Profile.Update)
				r.Post("/signature", h.Profile.UploadSignature)
			})

			r.Route("/school", func(r chi.Router) {
				r.Get("/", h.School.Get)
				r.Put("/", h.School.Upsert)
				r.Post("/signature", h.School.UploadPrincipalSignature)
				r.Post("/stamp", h.School.UploadStamp)
			})

			r.Route("/reports/monthly", func(r chi.Router) {
				r.Get("/", h.Report.GetMonthly)
				r.Get("/print", h.Report.PrintMonthly)
				r.Get("/export", h.Report.ExportMonthly)
			})
		})
	})
	return r
}
