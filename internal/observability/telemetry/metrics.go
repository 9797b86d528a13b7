package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	MessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bangla_messages_total",
		Help: "Inbound messages processed, by channel and detected language",
	}, []string{"channel", "language"})

	IntentResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bangla_intent_resolutions_total",
		Help: "Intent resolutions, by intent, strategy source and confidence bucket",
	}, []string{"intent", "source", "confidence"})

	DecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bangla_decisions_total",
		Help: "Dialogue decisions, by action",
	}, []string{"action"})

	HandoffsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bangla_handoffs_total",
		Help: "Escalations to human agents, by reason and priority",
	}, []string{"reason", "priority"})

	PipelineLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bangla_pipeline_latency_seconds",
		Help:    "End-to-end latency of one message through the pipeline",
		Buckets: prometheus.DefBuckets,
	})

	ModelLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bangla_model_latency_seconds",
		Help:    "Latency of generative-model completions",
		Buckets: prometheus.DefBuckets,
	})

	// Infrastructure metrics
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bangla_database_latency_seconds",
		Help:    "Latency of database queries",
		Buckets: prometheus.DefBuckets,
	})

	WebsocketSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bangla_websocket_sessions",
		Help: "Open webchat websocket sessions",
	})
)

// ConfidenceBucket folds a confidence score into a low-cardinality label.
func ConfidenceBucket(confidence float64) string {
	switch {
	case confidence < 0.45:
		return "low"
	case confidence < 0.75:
		return "medium"
	default:
		return "high"
	}
}
