package user

import "time"

// User is a teacher account together with the identity printed on reports
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Name            string
	NIP             string
	Position        string // jabatan
	WorkUnit        string // unit kerja
	OrgUnit         string // unit organisasi
	SignaturePath   *string
	EmailVerifiedAt *time.Time // nil until the signup link is followed
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
