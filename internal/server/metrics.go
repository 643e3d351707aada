package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the review service.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ReviewsTotal    *prometheus.CounterVec
	FindingsTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "purchase_review_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "purchase_review_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ReviewsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "purchase_review_reviews_total",
			Help: "Completed reviews by applicant kind and outcome",
		}, []string{"applicant_kind", "outcome"}),
		FindingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "purchase_review_findings_total",
			Help: "Supplementary findings by severity",
		}, []string{"severity"}),
	}
}

// ObserveReview records the outcome of one finished review.
func (m *Metrics) ObserveReview(applicantKind string, findings, manualChecks int) {
	outcome := "complete"
	if findings > 0 {
		outcome = "supplement"
	}
	m.ReviewsTotal.WithLabelValues(applicantKind, outcome).Inc()
	m.FindingsTotal.WithLabelValues("failed").Add(float64(findings - manualChecks))
	m.FindingsTotal.WithLabelValues("manual_check").Add(float64(manualChecks))
}
