package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/requestid"
)

// AttachTracingMetadata copies chi's request id and the caller's
// idempotency key into the context, where the API client forwards them,
// and tags the active span with them. It must run after middleware.RequestID.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		idempotencyKey := r.Header.Get(requestid.HeaderXIdempotencyKey)

		ctx := requestid.WithRequestID(r.Context(), requestID)
		if idempotencyKey != "" {
			ctx = requestid.WithIdempotencyKey(ctx, idempotencyKey)
		}

		span := trace.SpanFromContext(ctx)
		span.SetAttributes(attribute.String("request.id", requestID))
		if idempotencyKey != "" {
			span.SetAttributes(attribute.String("request.idempotency_key", idempotencyKey))
		}

		w.Header().Set(requestid.HeaderXRequestId, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
