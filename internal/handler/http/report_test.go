package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lckh-guru/lckh-backend-go/internal/domain/report"
	"github.com/lckh-guru/lckh-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHandler_GetMonthly(t *testing.T) {
	env := newTestRouter(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly?month=8&year=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, report.MonthlyReportRequest{Month: 8, Year: 2025}, env.svc.report.req)
	assert.Contains(t, rec.Body.String(), `"month":8`)
}

func TestReportHandler_GetMonthlyValidation(t *testing.T) {
	env := newTestRouter(t)
	env.svc.report.err = validator.ValidationErrors{{Field: "month", Message: "month must be between 1 and 12"}}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly?month=13&year=2025", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReportHandler_GetMonthlyBadYear(t *testing.T) {
	env := newTestRouter(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly?month=8&year=dua", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_PrintMonthly(t *testing.T) {
	env := newTestRouter(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/print?month=8&year=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<html>LCKH</html>", rec.Body.String())
}

func TestReportHandler_ExportMonthly(t *testing.T) {
	env := newTestRouter(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/export?month=8&year=2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="LCKH_2025_08.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
	assert.Equal(t, "PK-xlsx", rec.Body.String())
}
