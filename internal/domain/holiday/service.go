package holiday

import (
	"context"
	"io"
)

type HolidayService interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	List(ctx context.Context, filter HolidayFilter) ([]HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	ImportICS(ctx context.Context, r io.Reader) (ImportResult, error)
}
