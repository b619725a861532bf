package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/lckh-guru/lckh-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	// Monthly report as JSON
	GetMonthly(w http.ResponseWriter, r *http.Request)

	// Printable HTML page
	PrintMonthly(w http.ResponseWriter, r *http.Request)

	// XLSX download
	ExportMonthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func parseMonthlyRequest(w http.ResponseWriter, r *http.Request) (report.MonthlyReportRequest, bool) {
	month, err := queryInt(r, "month")
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return report.MonthlyReportRequest{}, false
	}

	year, err := queryInt(r, "year")
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return report.MonthlyReportRequest{}, false
	}

	return report.MonthlyReportRequest{Month: month, Year: year}, true
}

// GetMonthly handles GET /reports/monthly
func (h *reportHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	req, ok := parseMonthlyRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.GenerateMonthly(r.Context(), req)
	if err != nil {
		slog.Error("Generate monthly report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PrintMonthly handles GET /reports/monthly/print
func (h *reportHandlerImpl) PrintMonthly(w http.ResponseWriter, r *http.Request) {
	req, ok := parseMonthlyRequest(w, r)
	if !ok {
		return
	}

	page, err := h.reportService.RenderMonthlyHTML(r.Context(), req)
	if err != nil {
		slog.Error("Render monthly report error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.HTML(w, page)
}

// ExportMonthly handles GET /reports/monthly/export
func (h *reportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	req, ok := parseMonthlyRequest(w, r)
	if !ok {
		return
	}

	body, err := h.reportService.ExportMonthlyXLSX(r.Context(), req)
	if err != nil {
		slog.Error("Export monthly report error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("LCKH_%04d_%02d.xlsx", req.Year, req.Month)
	response.Attachment(w, xlsxContentType, filename, body)
}
