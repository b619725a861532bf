package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateMonthly resolves every day of the month into the daily log and recap
	GenerateMonthly(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// RenderMonthlyHTML returns the printable laporan as an HTML document
	RenderMonthlyHTML(ctx context.Context, req MonthlyReportRequest) ([]byte, error)

	// ExportMonthlyXLSX returns the laporan as an Excel workbook
	ExportMonthlyXLSX(ctx context.Context, req MonthlyReportRequest) ([]byte, error)
}
