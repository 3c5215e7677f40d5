package httpx

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/ports"
)

type toastBoxKey struct{}

// toastBox collects the toasts raised while serving one request.
type toastBox struct {
	mu     sync.Mutex
	toasts []entity.Toast
}

func withToastBox(ctx context.Context) context.Context {
	return context.WithValue(ctx, toastBoxKey{}, &toastBox{})
}

func toastsFrom(ctx context.Context) []entity.Toast {
	box, ok := ctx.Value(toastBoxKey{}).(*toastBox)
	if !ok {
		return []entity.Toast{}
	}
	box.mu.Lock()
	defer box.mu.Unlock()
	out := make([]entity.Toast, len(box.toasts))
	copy(out, box.toasts)
	return out
}

// RequestNotifier delivers toasts into the response of the request whose
// context they were raised with. Toasts raised outside a request are dropped.
var RequestNotifier ports.Notifier = ports.NotifierFunc(func(ctx context.Context, t entity.Toast) {
	box, ok := ctx.Value(toastBoxKey{}).(*toastBox)
	if !ok {
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	box.mu.Lock()
	box.toasts = append(box.toasts, t)
	box.mu.Unlock()
})

func notify(ctx context.Context, kind entity.ToastKind, msg string) {
	RequestNotifier.Notify(ctx, entity.Toast{Kind: kind, Message: msg})
}
