package requestid

import (
	"context"
	"net/http"
	"testing"
)

func TestInject(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithIdempotencyKey(ctx, "idem-1")

	h := http.Header{}
	Inject(ctx, h)

	if got := h.Get(HeaderXRequestId); got != "req-42" {
		t.Fatalf("expected request id header, got %q", got)
	}
	if got := h.Get(HeaderXIdempotencyKey); got != "idem-1" {
		t.Fatalf("expected idempotency header, got %q", got)
	}
}

func TestInject_KeepsExplicitHeaders(t *testing.T) {
	ctx := WithIdempotencyKey(context.Background(), "from-ctx")
	h := http.Header{}
	h.Set(HeaderXIdempotencyKey, "explicit")

	Inject(ctx, h)

	if got := h.Get(HeaderXIdempotencyKey); got != "explicit" {
		t.Fatalf("explicit header overwritten: %q", got)
	}
	if h.Get(HeaderXRequestId) != "" {
		t.Fatalf("request id header must stay empty without an id in ctx")
	}
}

func TestFromContext_Empty(t *testing.T) {
	if FromContext(context.Background()) != "" || IdempotencyKey(context.Background()) != "" {
		t.Fatalf("expected empty values on a bare context")
	}
}
