// Package metrics holds the prometheus collectors exported by shipledger.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors, registered with the default registry.
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	LedgerWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_writes_total",
			Help: "Writes submitted to the ledger by result",
		},
		[]string{"method", "result"},
	)
	LedgerWriteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_write_duration_seconds",
			Help:    "Time from submission to confirmed receipt.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"method"},
	)
	LedgerEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_events_total",
			Help: "Ledger events handled by the listener",
		},
		[]string{"event"},
	)
	ListenerBlock = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "listener_cursor_block",
			Help: "Last block fully handled by the listener.",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPRequestDuration, LedgerWrites, LedgerWriteDuration, LedgerEvents,
		ListenerBlock)
}
