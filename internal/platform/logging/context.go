package logging

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextFieldsKey struct{}

// ContextWith returns a context whose Context log calls carry the given
// key/value pairs, such as the owner resolved for a request. Later pairs
// replace earlier ones with the same key.
func ContextWith(ctx context.Context, args ...any) context.Context {
	added := fields(args)
	if len(added) == 0 {
		return ctx
	}

	existing, _ := ctx.Value(contextFieldsKey{}).([]zap.Field)
	merged := make([]zap.Field, 0, len(existing)+len(added))
	for _, f := range existing {
		if !hasKey(added, f.Key) {
			merged = append(merged, f)
		}
	}
	merged = append(merged, added...)
	return context.WithValue(ctx, contextFieldsKey{}, merged)
}

// appendContextFields adds the trace ids and ContextWith fields of ctx. A key
// already passed explicitly to the log call wins.
func appendContextFields(ctx context.Context, out []zap.Field) []zap.Field {
	carried, _ := ctx.Value(contextFieldsKey{}).([]zap.Field)
	for _, f := range carried {
		if !hasKey(out, f.Key) {
			out = append(out, f)
		}
	}

	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return out
	}
	if !hasKey(out, "trace_id") {
		out = append(out, zap.String("trace_id", spanCtx.TraceID().String()))
	}
	if !hasKey(out, "span_id") {
		out = append(out, zap.String("span_id", spanCtx.SpanID().String()))
	}
	return out
}

func hasKey(fs []zap.Field, key string) bool {
	return slices.ContainsFunc(fs, func(f zap.Field) bool { return f.Key == key })
}
