package holiday

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/holiday"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/observability"
)

type holidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
	parser      *ICSParser
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, parser *ICSParser) holiday.HolidayService {
	return &holidayServiceImpl{holidayRepo: holidayRepo, parser: parser}
}

// Create implements holiday.HolidayService.
func (s *holidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	if req.Note != nil {
		note := strings.TrimSpace(*req.Note)
		req.Note = &note
		if note == "" {
			req.Note = nil
		}
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{Date: req.Date, Note: req.Note})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.HolidayResponse{}, holiday.ErrHolidayDateExists
		}
		return holiday.HolidayResponse{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return holiday.NewHolidayResponse(created), nil
}

// List implements holiday.HolidayService.
func (s *holidayServiceImpl) List(ctx context.Context, filter holiday.HolidayFilter) ([]holiday.HolidayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	holidays, err := s.holidayRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, len(holidays))
	for i, h := range holidays {
		responses[i] = holiday.NewHolidayResponse(h)
	}
	return responses, nil
}

// Delete implements holiday.HolidayService.
func (s *holidayServiceImpl) Delete(ctx context.Context, id string) error {
	return s.holidayRepo.Delete(ctx, id)
}

// ImportICS implements holiday.HolidayService. Dates already on the calendar are skipped.
func (s *holidayServiceImpl) ImportICS(ctx context.Context, r io.Reader) (holiday.ImportResult, error) {
	days, err := s.parser.Parse(r)
	if err != nil {
		return holiday.ImportResult{}, err
	}

	result := holiday.ImportResult{Dates: []string{}}
	for _, d := range days {
		inserted, err := s.holidayRepo.CreateIfAbsent(ctx, holiday.Holiday{Date: d.Date, Note: d.Note})
		if err != nil {
			return holiday.ImportResult{}, fmt.Errorf("failed to import %s: %w", d.Date, err)
		}
		if inserted {
			result.Inserted++
			result.Dates = append(result.Dates, d.Date)
		} else {
			result.Skipped++
		}
	}

	observability.RecordHolidayImport(result.Inserted, result.Skipped)
	return result, nil
}
