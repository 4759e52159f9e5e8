package otel

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

const KEY_ERROR_RETRYABLE = "error.retryable"

// RecordError fails span with err. Failures a client may resubmit are tagged
// with error.retryable so they can be filtered apart from rejected input.
func RecordError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.RecordError(err, trace.WithAttributes(
		attribute.Bool(KEY_ERROR_RETRYABLE, inErrors.Retryable(err)),
	))
	span.SetStatus(codes.Error, err.Error())
}
