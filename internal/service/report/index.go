package report

import (
	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/schedule"
)

// HolidaySet holds the kaldik dates as YYYY-MM-DD keys
type HolidaySet map[string]struct{}

// NewHolidaySet builds the set, ignoring any time suffix on the dates
func NewHolidaySet(dates []string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[normalizeDate(d)] = struct{}{}
	}
	return set
}

// Contains reports whether date is a holiday
func (s HolidaySet) Contains(date string) bool {
	_, ok := s[normalizeDate(date)]
	return ok
}

// ScheduleIndex groups jadwal entries by working weekday, keeping their order
type ScheduleIndex struct {
	byWeekday map[int][]schedule.Entry
}

// NewScheduleIndex drops entries outside Monday..Friday
func NewScheduleIndex(entries []schedule.Entry) ScheduleIndex {
	idx := ScheduleIndex{byWeekday: make(map[int][]schedule.Entry, 5)}
	for _, e := range entries {
		if !e.IsWorkday() {
			continue
		}
		idx.byWeekday[e.Weekday] = append(idx.byWeekday[e.Weekday], e)
	}
	return idx
}

// ForWeekday returns the entries for weekday (1=Monday); weekends have none
func (i ScheduleIndex) ForWeekday(weekday int) []schedule.Entry {
	return i.byWeekday[weekday]
}

// ActivityIndex groups kegiatan by exact date, keeping fetch order
type ActivityIndex struct {
	byDate map[string][]activity.Activity
}

// NewActivityIndex keys activities by their YYYY-MM-DD date
func NewActivityIndex(activities []activity.Activity) ActivityIndex {
	idx := ActivityIndex{byDate: make(map[string][]activity.Activity)}
	for _, a := range activities {
		key := normalizeDate(a.Date)
		idx.byDate[key] = append(idx.byDate[key], a)
	}
	return idx
}

// ForDate returns the activities logged on date, in fetch order
func (i ActivityIndex) ForDate(date string) []activity.Activity {
	return i.byDate[normalizeDate(date)]
}

// normalizeDate drops any time suffix from an ISO date
func normalizeDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
