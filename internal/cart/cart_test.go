package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/workshop-storefront/internal/api"
	"github.com/jcmexdev/workshop-storefront/internal/coordinator"
	"github.com/jcmexdev/workshop-storefront/internal/storefront/core/domain/entity"
)

type staticTokens string

func (s staticTokens) Token(context.Context) string { return string(s) }

type toastRecorder struct {
	mu     sync.Mutex
	toasts []entity.Toast
}

func (r *toastRecorder) Notify(_ context.Context, t entity.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

func (r *toastRecorder) last() entity.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return entity.Toast{}
	}
	return r.toasts[len(r.toasts)-1]
}

// fakeCart is a scripted CartService. Hooks run inside the call so tests can
// observe the local state while a request is in flight.
type fakeCart struct {
	mu    sync.Mutex
	calls int

	getReply    entity.CartReply
	getErr      error
	addReply    entity.CartReply
	addErr      error
	addHook     func()
	removeErr   error
	removeHook  func()
	updateReply entity.CartReply
	updateErr   error
	updateHook  func()
}

func (f *fakeCart) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeCart) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCart) GetCart(context.Context, string) (entity.CartReply, error) {
	f.count()
	return f.getReply, f.getErr
}

func (f *fakeCart) AddItem(context.Context, string, int64, int) (entity.CartReply, error) {
	f.count()
	if f.addHook != nil {
		f.addHook()
	}
	return f.addReply, f.addErr
}

func (f *fakeCart) RemoveItem(context.Context, string, int64) (entity.CartReply, error) {
	f.count()
	if f.removeHook != nil {
		f.removeHook()
	}
	return entity.CartReply{}, f.removeErr
}

func (f *fakeCart) UpdateQuantity(context.Context, string, int64, int) (entity.CartReply, error) {
	f.count()
	if f.updateHook != nil {
		f.updateHook()
	}
	return f.updateReply, f.updateErr
}

func line(id int64, price, qty int64) entity.CartItem {
	return entity.CartItem{
		ID:        id,
		ProductID: id * 10,
		Quantity:  int(qty),
		Price:     decimal.NewFromInt(price),
		ItemTotal: decimal.NewFromInt(price * qty),
	}
}

func newSync(t *testing.T, svc *fakeCart, token string) (*Synchronizer, *toastRecorder) {
	t.Helper()
	toasts := &toastRecorder{}
	s := NewSynchronizer(Deps{
		Service:  svc,
		Runner:   coordinator.NewRunner(nil),
		Notifier: toasts,
		Tokens:   staticTokens(token),
	})
	return s, toasts
}

func seed(s *Synchronizer, items ...entity.CartItem) {
	s.store.ReplaceIf(items, s.store.Generation())
}

func TestUpdateQuantity_OptimisticThenRevert(t *testing.T) {
	svc := &fakeCart{updateErr: &api.Error{Status: 500, Key: "fail"}}
	s, toasts := newSync(t, svc, "tok")
	seed(s, line(1, 100, 2))

	svc.updateHook = func() {
		got := s.Snapshot().Items[0]
		if got.Quantity != 3 || !got.ItemTotal.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected optimistic 3/300 before confirmation, got %d/%s", got.Quantity, got.ItemTotal)
		}
	}

	err := s.UpdateQuantity(context.Background(), 1, 3)
	if err == nil {
		t.Fatalf("expected an error")
	}

	got := s.Snapshot().Items[0]
	if got.Quantity != 2 || !got.ItemTotal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected revert to 2/200, got %d/%s", got.Quantity, got.ItemTotal)
	}
	if toasts.last().Kind != entity.ToastError {
		t.Fatalf("expected an error toast")
	}
}

func TestUpdateQuantity_FailureRestoresSnapshot(t *testing.T) {
	svc := &fakeCart{updateErr: errors.New("connection reset")}
	s, _ := newSync(t, svc, "tok")
	seed(s, line(1, 10, 1), line(2, 5, 4), line(3, 7, 2))
	before := s.Snapshot()

	_ = s.UpdateQuantity(context.Background(), 2, 9)

	after := s.Snapshot()
	if len(after.Items) != len(before.Items) || !after.Total.Equal(before.Total) {
		t.Fatalf("expected %+v, got %+v", before, after)
	}
	for i := range before.Items {
		if before.Items[i].ID != after.Items[i].ID || before.Items[i].Quantity != after.Items[i].Quantity {
			t.Fatalf("line %d differs: %+v vs %+v", i, before.Items[i], after.Items[i])
		}
	}
}

func TestUpdateQuantity_SuccessReconcilesToServer(t *testing.T) {
	server := line(1, 100, 3)
	server.ItemTotal = decimal.NewFromInt(270) // discount applied remotely
	svc := &fakeCart{updateReply: entity.CartReply{Items: []entity.CartItem{server}, HasItems: true}}
	s, _ := newSync(t, svc, "tok")
	seed(s, line(1, 100, 2))

	if err := s.UpdateQuantity(context.Background(), 1, 3); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := s.Snapshot().Total; !got.Equal(decimal.NewFromInt(270)) {
		t.Fatalf("expected the server total, got %s", got)
	}
}

func TestUpdateQuantity_BelowOneIsNoop(t *testing.T) {
	svc := &fakeCart{}
	s, _ := newSync(t, svc, "tok")
	seed(s, line(1, 100, 2))

	if err := s.UpdateQuantity(context.Background(), 1, 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if svc.Calls() != 0 || s.Snapshot().Items[0].Quantity != 2 {
		t.Fatalf("expected nothing to happen")
	}
}

func TestRemoveFromCart_FailureRestoresPosition(t *testing.T) {
	svc := &fakeCart{removeErr: &api.Error{Status: 200, Key: "fail", Msg: "لا يمكن الحذف"}}
	s, toasts := newSync(t, svc, "tok")
	seed(s, line(1, 10, 1), line(2, 20, 1), line(3, 30, 1))

	svc.removeHook = func() {
		if n := len(s.Snapshot().Items); n != 2 {
			t.Errorf("expected the line removed before confirmation, have %d", n)
		}
	}

	if err := s.RemoveFromCart(context.Background(), 2); err == nil {
		t.Fatalf("expected an error")
	}

	items := s.Snapshot().Items
	if len(items) != 3 || items[1].ID != 2 {
		t.Fatalf("expected item 2 back at index 1, got %+v", items)
	}
	if got := toasts.last(); got.Message != "لا يمكن الحذف" {
		t.Fatalf("expected the server message, got %+v", got)
	}
}

func TestRemoveFromCart_RevertKeepsNewerWrites(t *testing.T) {
	svc := &fakeCart{removeErr: errors.New("timeout")}
	s, _ := newSync(t, svc, "tok")
	seed(s, line(1, 10, 1), line(2, 20, 1), line(3, 30, 1))

	// a concurrent quantity change lands while the removal is in flight
	svc.removeHook = func() {
		s.store.Mutate(func(items []entity.CartItem) []entity.CartItem {
			items[indexOf(items, 3)] = items[indexOf(items, 3)].WithQuantity(5)
			return items
		})
	}

	_ = s.RemoveFromCart(context.Background(), 2)

	items := s.Snapshot().Items
	if len(items) != 3 || items[1].ID != 2 {
		t.Fatalf("expected item 2 restored at index 1, got %+v", items)
	}
	if items[2].Quantity != 5 {
		t.Fatalf("the newer write must survive the rollback, got %+v", items[2])
	}
}

func TestRemoveFromCart_Success(t *testing.T) {
	svc := &fakeCart{}
	s, toasts := newSync(t, svc, "tok")
	seed(s, line(1, 10, 1), line(2, 20, 1))

	if err := s.RemoveFromCart(context.Background(), 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if items := s.Snapshot().Items; len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("unexpected items %+v", items)
	}
	if len(toasts.toasts) != 0 {
		t.Fatalf("success must not toast")
	}
}

func TestAddToCart_NoTokenMakesNoCall(t *testing.T) {
	svc := &fakeCart{}
	s, toasts := newSync(t, svc, "")

	err := s.AddToCart(context.Background(), entity.Product{ID: 5})

	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if svc.Calls() != 0 {
		t.Fatalf("expected no network call, got %d", svc.Calls())
	}
	if toasts.last().Kind != entity.ToastError || toasts.last().Message == "" {
		t.Fatalf("expected a login toast, got %+v", toasts.last())
	}
}

func TestAddToCart_InFlightPerProduct(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	svc := &fakeCart{addReply: entity.CartReply{Items: []entity.CartItem{line(1, 10, 1)}, HasItems: true}}
	svc.addHook = func() {
		select {
		case entered <- struct{}{}:
			<-release
		default:
		}
	}
	s, _ := newSync(t, svc, "tok")

	done := make(chan error, 1)
	go func() { done <- s.AddToCart(context.Background(), entity.Product{ID: 10}) }()
	<-entered

	if err := s.AddToCart(context.Background(), entity.Product{ID: 10}); !errors.Is(err, ErrAddInFlight) {
		t.Fatalf("expected ErrAddInFlight for the same product, got %v", err)
	}
	if err := s.AddToCart(context.Background(), entity.Product{ID: 20}); err != nil {
		t.Fatalf("another product must not be blocked, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := s.AddToCart(context.Background(), entity.Product{ID: 10}); err != nil {
		t.Fatalf("flag must clear after completion, got %v", err)
	}
}

func TestAddToCart_FallsBackToFetch(t *testing.T) {
	svc := &fakeCart{
		addReply: entity.CartReply{},
		getReply: entity.CartReply{Items: []entity.CartItem{line(4, 15, 1)}, HasItems: true},
	}
	s, _ := newSync(t, svc, "tok")

	if err := s.AddToCart(context.Background(), entity.Product{ID: 40}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if svc.Calls() != 2 {
		t.Fatalf("expected add then fetch, got %d calls", svc.Calls())
	}
	if items := s.Snapshot().Items; len(items) != 1 || items[0].ID != 4 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestAddToCart_FailureKeepsState(t *testing.T) {
	svc := &fakeCart{addErr: &api.Error{Status: 422, Key: "fail"}}
	s, toasts := newSync(t, svc, "tok")
	seed(s, line(1, 10, 1))

	if err := s.AddToCart(context.Background(), entity.Product{ID: 2}); err == nil {
		t.Fatalf("expected an error")
	}
	if len(s.Snapshot().Items) != 1 {
		t.Fatalf("state must be untouched")
	}
	if toasts.last().Message == "" {
		t.Fatalf("expected a fallback message")
	}
}

func TestFetchCart_SilentOnFailure(t *testing.T) {
	svc := &fakeCart{getErr: errors.New("500")}
	s, toasts := newSync(t, svc, "tok")
	seed(s, line(1, 10, 1))

	s.FetchCart(context.Background())

	if len(s.Snapshot().Items) != 1 || len(toasts.toasts) != 0 {
		t.Fatalf("fetch failure must be silent and keep state")
	}
}

func TestFetchCart_DiscardsStaleReply(t *testing.T) {
	svc := &fakeCart{getReply: entity.CartReply{Items: []entity.CartItem{}, HasItems: true}}
	s, _ := newSync(t, svc, "tok")
	seed(s, line(1, 10, 1))

	gen := s.store.Generation()
	s.store.Mutate(func(items []entity.CartItem) []entity.CartItem { return items })

	if s.store.ReplaceIf(nil, gen) {
		t.Fatalf("a reply older than a local write must be discarded")
	}
	s.FetchCart(context.Background())
	if len(s.Snapshot().Items) != 0 {
		t.Fatalf("a current reply must be applied")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(Deps{Service: &fakeCart{}, Tokens: staticTokens("")})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	a := r.Get("a")
	if r.Get("a") != a {
		t.Fatalf("expected the same synchronizer per session")
	}
	now = now.Add(2 * time.Hour)
	r.Get("b")

	if ids := r.Sweep(time.Hour); len(ids) != 1 || ids[0] != "a" || r.Len() != 1 {
		t.Fatalf("expected cart a swept, got %v (len %d)", ids, r.Len())
	}
	r.Drop("b")
	if r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}
