package report

import (
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/schedule"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/calendar"
)

// ResolveDay returns the rows printed for day. First match wins:
//  1. Saturday or Sunday: nothing
//  2. holiday: nothing, whatever was logged
//  3. a full-day activity: that activity alone
//  4. otherwise the weekday's schedule entries followed by the day's activities
func ResolveDay(day time.Time, holidays HolidaySet, schedules ScheduleIndex, activities ActivityIndex) []report.Row {
	if calendar.IsWeekend(day) {
		return nil
	}

	key := calendar.DateKey(day)
	if holidays.Contains(key) {
		return nil
	}

	logged := activities.ForDate(key)
	for _, a := range logged {
		if a.FullDay {
			return []report.Row{rowFromActivity(a)}
		}
	}

	entries := schedules.ForWeekday(calendar.ISOWeekday(day))
	if len(entries) == 0 && len(logged) == 0 {
		return nil
	}

	rows := make([]report.Row, 0, len(entries)+len(logged))
	for _, e := range entries {
		rows = append(rows, rowFromSchedule(e, key))
	}
	for _, a := range logged {
		rows = append(rows, rowFromActivity(a))
	}
	return rows
}

func rowFromActivity(a activity.Activity) report.Row {
	return report.Row{
		Date:        normalizeDate(a.Date),
		Category:    a.Category,
		Description: a.Description,
		Output:      a.Output,
		Volume:      a.Volume,
		Unit:        a.Unit,
		FullDay:     a.FullDay,
		SourceID:    a.ID,
	}
}

func rowFromSchedule(e schedule.Entry, date string) report.Row {
	return report.Row{
		Date:         date,
		Category:     e.Category,
		Description:  e.Description,
		Output:       e.Output,
		Volume:       e.Volume,
		Unit:         e.Unit,
		FromSchedule: true,
		SourceID:     e.ID,
	}
}
