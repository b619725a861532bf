package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reportGenerationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lckh",
		Subsystem: "report",
		Name:      "generations_total",
		Help:      "Monthly reports generated, by output format and outcome.",
	}, []string{"format", "outcome"})

	reportGenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lckh",
		Subsystem: "report",
		Name:      "generation_duration_seconds",
		Help:      "Time spent fetching, resolving and rendering a monthly report.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format"})

	reportRowsResolved = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lckh",
		Subsystem: "report",
		Name:      "rows_resolved",
		Help:      "Number of daily log rows resolved per generated report.",
		Buckets:   []float64{0, 10, 25, 50, 100, 200, 400},
	})

	holidayImportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lckh",
		Subsystem: "holiday",
		Name:      "imported_dates_total",
		Help:      "Dates processed by iCalendar imports, by result.",
	}, []string{"result"})

	jobRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lckh",
		Subsystem: "cron",
		Name:      "job_runs_total",
		Help:      "Background job runs, by job name and outcome.",
	}, []string{"job", "outcome"})
)

func init() {
	prometheus.MustRegister(reportGenerationsTotal, reportGenerationDuration, reportRowsResolved, holidayImportsTotal, jobRunsTotal)
}

// RecordReportGeneration counts one report run and observes how long it took.
func RecordReportGeneration(format string, started time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	reportGenerationsTotal.WithLabelValues(format, outcome).Inc()
	reportGenerationDuration.WithLabelValues(format).Observe(time.Since(started).Seconds())
}

// RecordReportRows observes the size of a resolved daily log.
func RecordReportRows(rows int) {
	if rows < 0 {
		return
	}
	reportRowsResolved.Observe(float64(rows))
}

// RecordHolidayImport adds the inserted and skipped counts of one import.
func RecordHolidayImport(inserted, skipped int) {
	if inserted > 0 {
		holidayImportsTotal.WithLabelValues("inserted").Add(float64(inserted))
	}
	if skipped > 0 {
		holidayImportsTotal.WithLabelValues("skipped").Add(float64(skipped))
	}
}

// RecordJobRun counts one background job run.
func RecordJobRun(job string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	jobRunsTotal.WithLabelValues(job, outcome).Inc()
}
