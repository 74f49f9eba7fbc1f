package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

// Classification source labels.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

var (
	ClassificationsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safenest_classifications_total",
			Help: "Total classifications by scoring source",
		},
		[]string{"source"},
	)

	FlaggedTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "safenest_flagged_total",
			Help: "Total observations flagged by the classifier-level rule",
		},
	)

	NotificationDecisionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safenest_notification_decisions_total",
			Help: "Threshold decisions that require a parent notification, by severity",
		},
		[]string{"severity"},
	)

	PushDispatchTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safenest_push_dispatch_total",
			Help: "Push dispatch attempts by outcome",
		},
		[]string{"outcome"},
	)

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "safenest_requests_total",
			Help: "HTTP requests processed",
		},
		[]string{"method", "status"},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry exposes the private registry for the metrics endpoint.
func Registry() *prometheus.Registry {
	return registry
}
