package report

import (
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/activity"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Output formats of the monthly report
const (
	FormatJSON = "json"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

type MonthlyReportRequest struct {
	Month int `json:"month"` // 1..12
	Year  int `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Row is one resolved line of the daily log
type Row struct {
	Date         string            `json:"date"`
	Category     activity.Category `json:"category"`
	Description  string            `json:"description"`
	Output       string            `json:"output"`
	Volume       decimal.Decimal   `json:"volume"`
	Unit         string            `json:"unit"`
	FullDay      bool              `json:"full_day"`
	FromSchedule bool              `json:"from_schedule"`
	SourceID     string            `json:"source_id"`
}

// Day groups the rows resolved for one date
type Day struct {
	Date        string `json:"date"`
	DayName     string `json:"day_name"`
	DisplayDate string `json:"display_date"`
	Rows        []Row  `json:"rows"`
}

// MonthSummary is the outcome of aggregating every day of a month
type MonthSummary struct {
	Days        []Day
	Totals      map[activity.Category]decimal.Decimal
	SignOffDate string
}

// RecapRow is one line of the monthly recap; Volume is nil when nothing was done
type RecapRow struct {
	No           int              `json:"no"`
	Category     string           `json:"category"`
	Volume       *decimal.Decimal `json:"volume"`
	BuktiDokumen string           `json:"bukti_dokumen"`
}

type Identity struct {
	Name          string  `json:"name"`
	NIP           string  `json:"nip"`
	Position      string  `json:"position"`
	WorkUnit      string  `json:"work_unit"`
	OrgUnit       string  `json:"org_unit"`
	SignaturePath *string `json:"-"`
	SignatureURL  *string `json:"signature_url"`
}

type SchoolInfo struct {
	SchoolName             string  `json:"school_name"`
	PrincipalName          string  `json:"principal_name"`
	PrincipalNIP           string  `json:"principal_nip"`
	City                   string  `json:"city"`
	PrincipalSignaturePath *string `json:"-"`
	PrincipalSignatureURL  *string `json:"principal_signature_url"`
	StampPath              *string `json:"-"`
	StampURL               *string `json:"stamp_url"`
}

type MonthlyReport struct {
	Month           int                        `json:"month"`
	Year            int                        `json:"year"`
	MonthName       string                     `json:"month_name"`
	Days            []Day                      `json:"days"`
	Totals          map[string]decimal.Decimal `json:"totals"`
	Recap           []RecapRow                 `json:"recap"`
	SignOffDate     string                     `json:"sign_off_date"`
	SignOffLongDate string                     `json:"sign_off_long_date"`
	Identity        Identity                   `json:"identity"`
	School          SchoolInfo                 `json:"school"`
	GeneratedAt     time.Time                  `json:"generated_at"`
}

// RowCount returns the number of rows in the daily log
func (m MonthlyReport) RowCount() int {
	n := 0
	for _, d := range m.Days {
		n += len(d.Rows)
	}
	return n
}

// BuildRecap lists every category in recap order with its total, if any
func BuildRecap(totals map[activity.Category]decimal.Decimal) []RecapRow {
	recap := make([]RecapRow, len(activity.Categories))
	for i, c := range activity.Categories {
		row := RecapRow{
			No:           i + 1,
			Category:     string(c),
			BuktiDokumen: c.BuktiDokumen(),
		}
		if total, ok := totals[c]; ok {
			v := total
			row.Volume = &v
		}
		recap[i] = row
	}
	return recap
}
