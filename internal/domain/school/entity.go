package school

import "time"

// Settings is the single shared record describing the school and its principal
type Settings struct {
	ID                     string
	SchoolName             string
	PrincipalName          string
	PrincipalNIP           string
	City                   string
	PrincipalSignaturePath *string
	StampPath              *string
	UpdatedAt              time.Time
}

// CityOr returns the configured city, or fallback when none is set
func (s Settings) CityOr(fallback string) string {
	if s.City == "" {
		return fallback
	}
	return s.City
}
