package client

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/adamwoolhether/pterom/client"

// startSpan opens a client span for the request and writes the
// trace context into the outgoing headers.
func (c *Client) startSpan(r *http.Request, route string) (ctx context.Context, span trace.Span) {
	ctx, span = c.tracer.Start(r.Context(), "pterom.client "+r.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("pterom.route", route),
			attribute.String("pterom.request_id", r.Header.Get("X-Request-Id")),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(r.Header))

	return ctx, span
}

func endSpan(span trace.Span, status int, err error) {
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
