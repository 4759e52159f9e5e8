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

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	Tracer = otel.Tracer(
		constants.APP_ORDER_SERVICE,
		trace.WithInstrumentationAttributes(semconv.ServiceNameKey.String(constants.APP_ORDER_SERVICE)),
	)

	CheckoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "order",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})

	TransitionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "order",
		Name:      "status_transitions_total",
		Help:      "Order status transition attempts by target status and result.",
	}, []string{"status", "result"})

	PaymentHandoffFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "order",
		Name:      "payment_handoff_failures_total",
		Help:      "Persisted orders whose payment handoff failed.",
	})

	OrdersCreated = inOtel.Counter(constants.APP_ORDER_SERVICE, "orders.created", "Orders materialized from a cart")
)
