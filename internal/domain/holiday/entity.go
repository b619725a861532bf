package holiday

import "time"

// Holiday is a kaldik date on which no report rows are produced
type Holiday struct {
	ID        string
	Date      string // YYYY-MM-DD
	Note      *string
	CreatedAt time.Time
}
