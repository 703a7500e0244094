// Package metrics holds the Prometheus collectors shared by the HTTP layer,
// the leave lifecycle and the outbox pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by route, method and status.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})

var LeaveSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "leave",
	Name:      "submissions_total",
	Help:      "Leave submissions by leave type and result code.",
}, []string{"leave_type", "result"})

var LeaveTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "leave",
	Name:      "transitions_total",
	Help:      "Committed leave status transitions by target status.",
}, []string{"status"})

var BalanceDebitedDays = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "balance",
	Name:      "debited_days_total",
	Help:      "Days debited from the leave ledger by leave type.",
}, []string{"leave_type"})

var OutboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "outbox",
	Name:      "published_total",
	Help:      "Outbox events handed to Kafka by result.",
}, []string{"result"})

var NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "notification",
	Name:      "sent_total",
	Help:      "Leave notification e-mails by result.",
}, []string{"result"})

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
