package watson

import (
	"context"
)

type contextKey struct {
	name string
}

var (
	operationKey = &contextKey{"operation"}
	headersKey   = &contextKey{"headers"}
)

// Operation identifies one API method of a service, e.g.
// {Service: "speech_to_text", Name: "recognize"}.
type Operation struct {
	Service string
	Version string
	Name    string
}

// ID returns "service.name".
func (o Operation) ID() string {
	return o.Service + "." + o.Name
}

// OperationFromContext returns the operation being invoked.
// It is set for the duration of a Service.Request call.
func OperationFromContext(ctx context.Context) (Operation, bool) {
	op, ok := ctx.Value(operationKey).(Operation)
	return op, ok
}

func withOperation(ctx context.Context, op Operation) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// WithHeaders returns a context that adds the given headers to every
// request sent with it. Later calls add to, and override, earlier ones.
func WithHeaders(ctx context.Context, headers map[string]string) context.Context {
	merged := make(map[string]string, len(headers))
	for k, v := range HeadersFromContext(ctx) {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}
	return context.WithValue(ctx, headersKey, merged)
}

// HeadersFromContext returns headers attached with WithHeaders.
func HeadersFromContext(ctx context.Context) map[string]string {
	if h, ok := ctx.Value(headersKey).(map[string]string); ok {
		return h
	}
	return nil
}
