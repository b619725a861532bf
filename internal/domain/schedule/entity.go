package schedule

import (
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/shopspring/decimal"
)

// Entry is a recurring jadwal row applied to every occurrence of its weekday
type Entry struct {
	ID          string
	UserID      string
	Weekday     int // 1=Monday, ..., 5=Friday
	Category    activity.Category
	Description string
	Output      string
	Volume      decimal.Decimal
	Unit        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsWorkday reports whether the entry can ever appear on a report
func (e Entry) IsWorkday() bool {
	return e.Weekday >= 1 && e.Weekday <= 5
}
