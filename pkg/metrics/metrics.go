package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pressdeck_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// FolderFetches counts repository folder/asset fetches issued by the navigator,
	// labelled by outcome (ok|error|stale).
	FolderFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pressdeck_navigator_fetches_total",
			Help: "Total folder content fetches issued by the navigation state machine",
		},
		[]string{"result"},
	)

	// EmailsDispatched counts scheduled email deliveries by result (sent|failed).
	EmailsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pressdeck_emails_dispatched_total",
			Help: "Total scheduled emails processed by the dispatcher",
		},
		[]string{"result"},
	)

	// PendingEmails tracks scheduled emails still waiting for dispatch.
	PendingEmails = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pressdeck_emails_pending",
			Help: "Number of scheduled emails in pending state",
		},
	)
)
