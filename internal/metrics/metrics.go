package metrics

import (
	"net/http"

	"user-service/internal/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var validationFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "user_service",
		Name:      "validation_failures_total",
		Help:      "Rejected request fields by field name and failure kind.",
	},
	[]string{"field", "kind"},
)

func init() {
	registry.MustRegister(
		validationFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordValidationFailure counts every field error in ve.
func RecordValidationFailure(ve *validation.ValidationError) {
	if ve == nil {
		return
	}
	for _, fe := range ve.Errors {
		field := fe.Field
		if field == validation.RootPath {
			field = "_root"
		}
		validationFailures.WithLabelValues(field, string(fe.Kind)).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
