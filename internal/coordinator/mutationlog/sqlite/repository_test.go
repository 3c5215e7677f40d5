package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jcmexdev/workshop-storefront/internal/coordinator/mutationlog"
)

func openTemp(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepository_SaveAndRead(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	applied := mutationlog.NewEntry(ctx, "m-1", "cart.remove_item", "cart_item:4", mutationlog.StatusApplied, `{"item_id":4}`, nil)
	applied.UpdatedAt = base
	reverted := mutationlog.NewEntry(ctx, "m-1", "cart.remove_item", "cart_item:4", mutationlog.StatusReverted, "", []string{"boom"})
	reverted.UpdatedAt = base.Add(time.Second)
	other := mutationlog.NewEntry(ctx, "m-2", "cart.update_quantity", "cart_item:1", mutationlog.StatusApplied, "", nil)

	for _, e := range []*mutationlog.Entry{applied, reverted, other} {
		if err := repo.Save(ctx, e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	latest, err := repo.GetLatest(ctx, "m-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Status != mutationlog.StatusReverted || latest.ErrorMessages != `["boom"]` {
		t.Fatalf("unexpected latest %+v", latest)
	}
	if !latest.UpdatedAt.Equal(base.Add(time.Second)) {
		t.Fatalf("time round trip: %v", latest.UpdatedAt)
	}

	history, err := repo.History(ctx, "m-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].Payload != `{"item_id":4}` || history[1].Payload != "" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestRepository_NotFound(t *testing.T) {
	repo := openTemp(t)

	if _, err := repo.GetLatest(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.History(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
