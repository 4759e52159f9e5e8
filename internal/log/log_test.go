package log

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/constants"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Application
		expected zerolog.Level
	}{
		{name: "given explicit level should use it", cfg: config.Application{Env: envDevelopment, LogLevel: "warn"}, expected: zerolog.WarnLevel},
		{name: "given development should trace", cfg: config.Application{Env: envDevelopment}, expected: zerolog.TraceLevel},
		{name: "given production should info", cfg: config.Application{Env: "production"}, expected: zerolog.InfoLevel},
		{name: "given unparsable level should fall back", cfg: config.Application{Env: "production", LogLevel: "loud"}, expected: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Level(tt.cfg))
		})
	}
}

func TestAttachTraceIdFromContext(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	c := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	c = AttachRequestIDToContext(c, "request-1")

	out := &strings.Builder{}
	lg := zerolog.New(out).Hook(AttachTraceIdFromContext())
	lg.Info().Ctx(c).Msg("hello")

	assert.Contains(t, out.String(), `"`+constants.KEY_TRACE_ID+`":"4bf92f3577b34da6a3ce929d0e0e4736"`)
	assert.Contains(t, out.String(), `"`+constants.KEY_SPAN_ID+`":"00f067aa0ba902b7"`)
	assert.Contains(t, out.String(), `"`+constants.KEY_REQUEST_ID+`":"request-1"`)
}

func TestAttachTraceIdWithoutContext(t *testing.T) {
	out := &strings.Builder{}
	lg := zerolog.New(out).Hook(AttachTraceIdFromContext())
	lg.Info().Msg("hello")

	assert.NotContains(t, out.String(), constants.KEY_TRACE_ID)
}
