package otel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/constants"
	inOtel "github.com/Alturino/storefront/internal/otel"
)

var (
	Tracer = otel.Tracer(
		constants.APP_CART_SERVICE,
		trace.WithInstrumentationAttributes(semconv.ServiceNameKey.String(constants.APP_CART_SERVICE)),
	)

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "active_sessions",
		Help:      "Cart sessions held in memory.",
	})

	FlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "flushes_total",
		Help:      "Cart snapshots written to the session store by result.",
	}, []string{"result"})

	CartMutations = inOtel.Counter(constants.APP_CART_SERVICE, "cart.mutations", "Cart mutations applied to a session")
)
