package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule entry not found")
)
