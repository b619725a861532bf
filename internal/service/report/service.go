package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/holiday"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/schedule"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/school"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/user"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/calendar"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/jwt"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/observability"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	activityRepo activity.ActivityRepository
	scheduleRepo schedule.ScheduleRepository
	holidayRepo  holiday.HolidayRepository
	userRepo     user.UserRepository
	schoolRepo   school.SchoolRepository
	storage      storage.FileStorage
	html         *HTMLRenderer
	xlsx         *ExcelRenderer
	loc          *time.Location
	now          func() time.Time
}

func NewReportService(
	activityRepo activity.ActivityRepository,
	scheduleRepo schedule.ScheduleRepository,
	holidayRepo holiday.HolidayRepository,
	userRepo user.UserRepository,
	schoolRepo school.SchoolRepository,
	fileStorage storage.FileStorage,
	html *HTMLRenderer,
	xlsx *ExcelRenderer,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		activityRepo: activityRepo,
		scheduleRepo: scheduleRepo,
		holidayRepo:  holidayRepo,
		userRepo:     userRepo,
		schoolRepo:   schoolRepo,
		storage:      fileStorage,
		html:         html,
		xlsx:         xlsx,
		loc:          loc,
		now:          time.Now,
	}
}

// GenerateMonthly implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthly(ctx context.Context, req report.MonthlyReportRequest) (m report.MonthlyReport, err error) {
	started := time.Now()
	defer func() { observability.RecordReportGeneration(report.FormatJSON, started, err) }()

	return s.generate(ctx, req)
}

// RenderMonthlyHTML implements report.ReportService.
func (s *ReportServiceImpl) RenderMonthlyHTML(ctx context.Context, req report.MonthlyReportRequest) (out []byte, err error) {
	started := time.Now()
	defer func() { observability.RecordReportGeneration(report.FormatHTML, started, err) }()

	m, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.html.Render(m)
}

// ExportMonthlyXLSX implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyXLSX(ctx context.Context, req report.MonthlyReportRequest) (out []byte, err error) {
	started := time.Now()
	defer func() { observability.RecordReportGeneration(report.FormatXLSX, started, err) }()

	m, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.xlsx.Render(ctx, m)
}

func (s *ReportServiceImpl) generate(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	month := time.Month(req.Month)
	start, end := calendar.MonthRange(req.Year, month, s.loc)
	startKey, endKey := calendar.DateKey(start), calendar.DateKey(end)

	var (
		activities []activity.Activity
		entries    []schedule.Entry
		holidays   []string
		owner      user.User
		settings   school.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activities, err = s.activityRepo.ListByDateRange(gctx, userID, startKey, endKey)
		if err != nil {
			return fmt.Errorf("failed to fetch activities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.scheduleRepo.ListByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch schedule: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		holidays, err = s.holidayRepo.ListDates(gctx, startKey, endKey)
		if err != nil {
			return fmt.Errorf("failed to fetch holidays: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		owner, err = s.userRepo.GetByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch identity: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.schoolRepo.Get(gctx)
		if errors.Is(err, school.ErrSettingsNotFound) {
			settings, err = school.Settings{}, nil
		}
		if err != nil {
			return fmt.Errorf("failed to fetch school settings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.MonthlyReport{}, err
	}

	summary := AggregateMonth(req.Year, month, s.loc,
		NewHolidaySet(holidays),
		NewScheduleIndex(entries),
		NewActivityIndex(activities),
	)

	totals := make(map[string]decimal.Decimal, len(summary.Totals))
	for c, v := range summary.Totals {
		totals[string(c)] = v
	}

	m := report.MonthlyReport{
		Month:           req.Month,
		Year:            req.Year,
		MonthName:       calendar.MonthName(month),
		Days:            summary.Days,
		Totals:          totals,
		Recap:           report.BuildRecap(summary.Totals),
		SignOffDate:     summary.SignOffDate,
		SignOffLongDate: calendar.FormatLongDate(summary.SignOffDate),
		Identity: report.Identity{
			Name:          owner.Name,
			NIP:           owner.NIP,
			Position:      owner.Position,
			WorkUnit:      owner.WorkUnit,
			OrgUnit:       owner.OrgUnit,
			SignaturePath: owner.SignaturePath,
			SignatureURL:  s.fileURL(ctx, owner.SignaturePath),
		},
		School: report.SchoolInfo{
			SchoolName:             settings.SchoolName,
			PrincipalName:          settings.PrincipalName,
			PrincipalNIP:           settings.PrincipalNIP,
			City:                   settings.City,
			PrincipalSignaturePath: settings.PrincipalSignaturePath,
			PrincipalSignatureURL:  s.fileURL(ctx, settings.PrincipalSignaturePath),
			StampPath:              settings.StampPath,
			StampURL:               s.fileURL(ctx, settings.StampPath),
		},
		GeneratedAt: s.now(),
	}
	observability.RecordReportRows(m.RowCount())
	return m, nil
}

// fileURL resolves a stored image path to its public URL, or nil
func (s *ReportServiceImpl) fileURL(ctx context.Context, path *string) *string {
	if path == nil || *path == "" || s.storage == nil {
		return nil
	}
	url, err := s.storage.GetURL(ctx, *path)
	if err != nil {
		slog.Warn("Failed to resolve report image URL", "path", *path, "error", err)
		return nil
	}
	return &url
}
