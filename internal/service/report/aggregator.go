package report

import (
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

// AggregateMonth resolves every day of the month in order and sums the
// volume of the resolved rows per category. The sign-off date is the last
// day with rows, or the last day of the month when there are none.
func AggregateMonth(year int, month time.Month, loc *time.Location, holidays HolidaySet, schedules ScheduleIndex, activities ActivityIndex) report.MonthSummary {
	summary := report.MonthSummary{
		Days:   []report.Day{},
		Totals: make(map[activity.Category]decimal.Decimal),
	}

	for d := 1; d <= calendar.DaysInMonth(year, month); d++ {
		day := calendar.Date(year, month, d, loc)
		rows := ResolveDay(day, holidays, schedules, activities)
		if len(rows) == 0 {
			continue
		}

		key := calendar.DateKey(day)
		summary.Days = append(summary.Days, report.Day{
			Date:        key,
			DayName:     calendar.DayName(day.Weekday()),
			DisplayDate: calendar.FormatDate(key),
			Rows:        rows,
		})
		for _, row := range rows {
			summary.Totals[row.Category] = summary.Totals[row.Category].Add(countableVolume(row.Volume))
		}
		summary.SignOffDate = key
	}

	if summary.SignOffDate == "" {
		summary.SignOffDate = calendar.DateKey(calendar.LastDayOfMonth(year, month, loc))
	}
	return summary
}

// countableVolume treats a negative volume as zero
func countableVolume(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
