package activity

import "errors"

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrFullDayConflict  = errors.New("another full-day activity already exists on this date")
)
