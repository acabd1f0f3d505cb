package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coinwatch"

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Price index requests by outcome.",
	}, []string{"outcome"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Price index request latency.",
		Buckets:   prometheus.DefBuckets,
	})

	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_connections",
		Help:      "Open event-stream connections.",
	})

	FramesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_sent_total",
		Help:      "Event-stream frames written, by kind.",
	}, []string{"kind"})

	GoalWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "goal_writes_total",
		Help:      "Goal updates by outcome.",
	}, []string{"outcome"})
)
