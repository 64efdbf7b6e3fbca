// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchtrack_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "benchtrack_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "benchtrack_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "benchtrack_rate_limit_rejections_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)

	// Domain
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Consultant reports generated, by report type",
		},
		[]string{"type"},
	)

	ResumeAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchtrack_resume_analyses_total",
			Help: "Resume analyses stored, by mode (keyword or fallback)",
		},
		[]string{"mode"},
	)

	ResumeBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "benchtrack_resume_breaker_open",
			Help: "1 while the resume extraction circuit breaker is open",
		},
	)

	ApplicationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchtrack_application_decisions_total",
			Help: "Applications submitted and reviewed, by outcome",
		},
		[]string{"outcome"},
	)

	AttendanceChatQuestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchtrack_attendance_chat_questions_total",
			Help: "Attendance chatbot questions, by detected intent",
		},
		[]string{"intent"},
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "benchtrack_websocket_connections",
			Help: "Connected notification WebSocket clients",
		},
	)
)

// RecordAPIRequest records one served request
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordReport(reportType string) {
	ReportsGenerated.WithLabelValues(reportType).Inc()
}

func RecordResumeAnalysis(mode string) {
	ResumeAnalyses.WithLabelValues(mode).Inc()
}

// SetBreakerOpen mirrors the resume breaker state
func SetBreakerOpen(open bool) {
	if open {
		ResumeBreakerState.Set(1)
		return
	}
	ResumeBreakerState.Set(0)
}

func RecordApplication(outcome string) {
	ApplicationDecisions.WithLabelValues(outcome).Inc()
}

func RecordChatQuestion(intent string) {
	AttendanceChatQuestions.WithLabelValues(intent).Inc()
}
