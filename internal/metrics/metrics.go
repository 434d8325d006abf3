package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess     = "success"
	OutcomeEmpty       = "empty"
	OutcomeError       = "error"
	OutcomeUnsupported = "unsupported"
	OutcomeStale       = "stale"
)

var (
	// ============================================
	// Quote fetches
	// ============================================
	QuoteFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridgequote_quote_fetches_total",
			Help: "Total number of quote fetches by outcome",
		},
		[]string{"outcome"},
	)

	QuoteFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridgequote_quote_fetch_duration_seconds",
		Help:    "Quote fetch duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	QuoteRoutesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridgequote_quote_routes_returned",
		Help:    "Number of routes returned per successful quote fetch",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})

	// ============================================
	// Debounce trigger
	// ============================================
	TriggerArms = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridgequote_trigger_arms_total",
		Help: "Total number of times the debounce timer was armed or re-armed",
	})

	TriggerCancels = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bridgequote_trigger_cancels_total",
		Help: "Total number of pending fetches cancelled by an invalid selection",
	})

	// ============================================
	// Token metadata
	// ============================================
	TokenFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridgequote_token_fetches_total",
			Help: "Total number of token list fetches by outcome",
		},
		[]string{"outcome"},
	)

	ChainsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridgequote_chains_loaded",
		Help: "Number of chains loaded at startup",
	})

	// ============================================
	// Stream sessions
	// ============================================
	StreamSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bridgequote_stream_sessions_active",
		Help: "Number of open websocket quote sessions",
	})

	StreamMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridgequote_stream_messages_total",
			Help: "Total number of websocket messages received by type",
		},
		[]string{"type"},
	)
)
