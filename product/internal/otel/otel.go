package otel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/constants"
)

const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	Tracer = otel.Tracer(
		constants.APP_PRODUCT_SERVICE,
		trace.WithInstrumentationAttributes(semconv.ServiceNameKey.String(constants.APP_PRODUCT_SERVICE)),
	)

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "product",
		Name:      "cache_lookups_total",
		Help:      "Product cache lookups by outcome.",
	}, []string{"outcome"})
)
