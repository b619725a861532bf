package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/lckh-guru/lckh-backend-go/internal/config"
	appHTTP "github.com/lckh-guru/lckh-backend-go/internal/handler/http"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/cron"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/email"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/storage"
	"github.com/lckh-guru/lckh-backend-go/internal/repository/postgresql"
	activityService "github.com/lckh-guru/lckh-backend-go/internal/service/activity"
	serviceAuth "github.com/lckh-guru/lckh-backend-go/internal/service/auth"
	"github.com/lckh-guru/lckh-backend-go/internal/service/file"
	holidayService "github.com/lckh-guru/lckh-backend-go/internal/service/holiday"
	reportService "github.com/lckh-guru/lckh-backend-go/internal/service/report"
	scheduleService "github.com/lckh-guru/lckh-backend-go/internal/service/schedule"
	schoolService "github.com/lckh-guru/lckh-backend-go/internal/service/school"
	userService "github.com/lckh-guru/lckh-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	var fileStorage storage.FileStorage
	var uploadsDir string
	switch cfg.Storage.Type {
	case "local":
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
		fileStorage = local
		uploadsDir = local.BasePath()
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	linkTokenRepo := postgresql.NewOneTimeTokenRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	schoolRepo := postgresql.NewSchoolRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	fileService := file.NewFileService(fileStorage, cfg.Storage.MaxUploadSize)

	htmlRenderer, err := reportService.NewHTMLRenderer(cfg.Report.DefaultCity)
	if err != nil {
		log.Fatal("Failed to initialize report template: ", err)
	}
	xlsxRenderer := reportService.NewExcelRenderer(fileStorage, cfg.Report.DefaultCity)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository, linkTokenRepo, emailService, cfg.App.FrontendURL)
	activitySvc := activityService.NewActivityService(db, activityRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, holidayService.NewICSParser(loc))
	profileSvc := userService.NewProfileService(userRepo, fileService)
	schoolSvc := schoolService.NewSchoolService(schoolRepo, fileService)
	reportSvc := reportService.NewReportService(
		activityRepo,
		scheduleRepo,
		holidayRepo,
		userRepo,
		schoolRepo,
		fileStorage,
		htmlRenderer,
		xlsxRenderer,
		loc,
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:      logger,
			FrontendURL: cfg.App.FrontendURL,
			UploadsDir:  uploadsDir,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:     appHTTP.NewAuthHandler(JWTService, authService),
			Activity: appHTTP.NewActivityHandler(activitySvc),
			Schedule: appHTTP.NewScheduleHandler(scheduleSvc),
			Holiday:  appHTTP.NewHolidayHandler(holidaySvc, cfg.Storage.MaxUploadSize),
			Profile:  appHTTP.NewProfileHandler(profileSvc, cfg.Storage.MaxUploadSize),
			School:   appHTTP.NewSchoolHandler(schoolSvc, cfg.Storage.MaxUploadSize),
			Report:   appHTTP.NewReportHandler(reportSvc),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(JWTRepository, linkTokenRepo, 24*time.Hour).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.App.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lckh-backend"),
		slog.String("env", cfg.App.Env),
	)
}
