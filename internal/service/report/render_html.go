package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer turns a MonthlyReport into the printable laporan
type HTMLRenderer struct {
	templates   *template.Template
	defaultCity string
}

func NewHTMLRenderer(defaultCity string) (*HTMLRenderer, error) {
	funcs := template.FuncMap{
		"inc":   func(i int) int { return i + 1 },
		"upper": strings.ToUpper,
		"orDash": func(s string) string {
			if strings.TrimSpace(s) == "" {
				return "-"
			}
			return s
		},
		"volume": formatVolume,
	}

	tmpl, err := template.New("laporan").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report templates: %w", err)
	}

	return &HTMLRenderer{
		templates:   tmpl,
		defaultCity: defaultCity,
	}, nil
}

type htmlReportData struct {
	Report                report.MonthlyReport
	SignOffLine           string
	SignatureURL          string
	PrincipalSignatureURL string
	StampURL              string
}

// Render executes the laporan template for m
func (r *HTMLRenderer) Render(m report.MonthlyReport) ([]byte, error) {
	data := htmlReportData{
		Report:                m,
		SignOffLine:           signOffLine(m, r.defaultCity),
		SignatureURL:          deref(m.Identity.SignatureURL),
		PrincipalSignatureURL: deref(m.School.PrincipalSignatureURL),
		StampURL:              deref(m.School.StampURL),
	}

	var body bytes.Buffer
	if err := r.templates.ExecuteTemplate(&body, "laporan.html", data); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrRenderFailed, err)
	}
	return body.Bytes(), nil
}

// signOffLine renders "<Kota>, <D> <Bulan> <YYYY>"
func signOffLine(m report.MonthlyReport, defaultCity string) string {
	city := m.School.City
	if strings.TrimSpace(city) == "" {
		city = defaultCity
	}
	return fmt.Sprintf("%s, %s", city, m.SignOffLongDate)
}

// formatVolume prints a volume for the daily log, leaving zero blank
func formatVolume(v decimal.Decimal) string {
	if v.IsZero() {
		return ""
	}
	return v.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
