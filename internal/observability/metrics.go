package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	submissionsTotal      *prometheus.CounterVec
	gradesRecordedTotal   *prometheus.CounterVec
	attendanceMarkedTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "academy_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_submissions_total",
			Help: "Total number of student submissions accepted, by content kind.",
		}, []string{"kind"})

		gradesRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_grades_recorded_total",
			Help: "Total number of grades recorded, by content kind.",
		}, []string{"kind"})

		attendanceMarkedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "academy_attendance_marked_total",
			Help: "Total number of attendance marks written, by status.",
		}, []string{"status"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			submissionsTotal,
			gradesRecordedTotal,
			attendanceMarkedTotal,
		)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// SubmissionsTotal exposes the counter for accepted submissions.
func SubmissionsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsTotal
}

// GradesRecordedTotal exposes the counter for recorded grades.
func GradesRecordedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return gradesRecordedTotal
}

// AttendanceMarkedTotal exposes the counter for attendance writes.
func AttendanceMarkedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return attendanceMarkedTotal
}
