package holiday

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/lckh-guru/lckh-backend-go/internal/domain/holiday"
)

// maxEventDays bounds how far a single multi-day event is expanded.
const maxEventDays = 366

// ImportedDay is one holiday date read from a calendar
type ImportedDay struct {
	Date string
	Note *string
}

type ICSParser struct {
	loc *time.Location
}

// NewICSParser reads holiday dates from iCalendar files, interpreting
// timed events in loc.
func NewICSParser(loc *time.Location) *ICSParser {
	return &ICSParser{loc: loc}
}

// Parse returns one entry per distinct date covered by the calendar's events,
// sorted by date. The first event seen for a date supplies its note.
func (p *ICSParser) Parse(r io.Reader) ([]ImportedDay, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", holiday.ErrInvalidCalendar, err)
	}

	seen := make(map[string]bool)
	var days []ImportedDay
	for _, evt := range cal.Events() {
		start, allDay, err := p.parseDate(evt, ics.ComponentPropertyDtStart)
		if err != nil {
			continue
		}

		var note *string
		if summary := evt.GetProperty(ics.ComponentPropertySummary); summary != nil {
			if v := strings.TrimSpace(summary.Value); v != "" {
				note = &v
			}
		}

		// DTEND is exclusive for all-day events; timed events cover their start date only
		end := start.AddDate(0, 0, 1)
		if allDay {
			if dtEnd, _, err := p.parseDate(evt, ics.ComponentPropertyDtEnd); err == nil && dtEnd.After(start) {
				end = dtEnd
			}
		}

		for d, n := start, 0; d.Before(end) && n < maxEventDays; d, n = d.AddDate(0, 0, 1), n+1 {
			key := d.Format(time.DateOnly)
			if seen[key] {
				continue
			}
			seen[key] = true
			days = append(days, ImportedDay{Date: key, Note: note})
		}
	}

	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no events with a start date", holiday.ErrInvalidCalendar)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// parseDate returns the calendar date of a DTSTART/DTEND property at midnight
// in the parser's location, and whether the value was a bare date.
func (p *ICSParser) parseDate(evt *ics.VEvent, prop ics.ComponentProperty) (time.Time, bool, error) {
	property := evt.GetProperty(prop)
	if property == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", prop)
	}
	val := strings.TrimSpace(property.Value)

	if t, err := time.ParseInLocation("20060102", val, p.loc); err == nil {
		return t, true, nil
	}

	var t time.Time
	var err error
	switch {
	case strings.HasSuffix(val, "Z"):
		t, err = time.Parse("20060102T150405Z", val)
		if err == nil {
			t = t.In(p.loc)
		}
	default:
		loc := p.loc
		for k, v := range property.ICalParameters {
			if strings.EqualFold(k, "TZID") && len(v) > 0 {
				if tz, tzErr := time.LoadLocation(v[0]); tzErr == nil {
					loc = tz
				}
			}
		}
		t, err = time.ParseInLocation("20060102T150405", val, loc)
		if err == nil {
			t = t.In(p.loc)
		}
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("cannot parse date %q: %w", val, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.loc), false, nil
}
