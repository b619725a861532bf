package school

import "errors"

var (
	ErrSettingsNotFound = errors.New("school settings not found")
)
