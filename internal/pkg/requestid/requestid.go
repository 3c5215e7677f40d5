// Package requestid carries the request id and idempotency key of an
// inbound request through the context and onto outbound API calls.
package requestid

import (
	"context"
	"net/http"
)

// contextKey is unexported so keys from other packages cannot collide.
type contextKey string

const (
	HeaderXRequestId      = "X-Request-Id"
	HeaderXIdempotencyKey = "X-Idempotency-Key"

	ContextKeyRequestID      contextKey = "request_id"
	ContextKeyIdempotencyKey contextKey = "idempotency_key"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ContextKeyIdempotencyKey, key)
}

// FromContext returns the request id, or "" when none is set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(ContextKeyIdempotencyKey).(string)
	return key
}

// Inject copies the ids found in ctx onto the outgoing request headers.
// Headers already set by the caller are left alone.
func Inject(ctx context.Context, h http.Header) {
	if id := FromContext(ctx); id != "" && h.Get(HeaderXRequestId) == "" {
		h.Set(HeaderXRequestId, id)
	}
	if key := IdempotencyKey(ctx); key != "" && h.Get(HeaderXIdempotencyKey) == "" {
		h.Set(HeaderXIdempotencyKey, key)
	}
}
