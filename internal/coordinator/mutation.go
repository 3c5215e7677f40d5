// Package coordinator runs optimistic mutations: a local change is applied
// first, confirmed against the remote API, and reverted when the API
// rejects it. Every transition is journaled.
package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jcmexdev/workshop-storefront/internal/coordinator/mutationlog"
)

// Mutation is one optimistic change. Apply must not fail; it is the local
// half. Confirm is the remote half. Revert undoes Apply and runs only when
// Confirm fails.
type Mutation struct {
	Name    string
	Subject string
	// Payload is journaled with the APPLIED entry. Optional.
	Payload any

	Apply   func()
	Confirm func(ctx context.Context) error
	Revert  func(ctx context.Context) error
}

// Runner executes mutations and journals their outcome.
type Runner struct {
	journal mutationlog.Repository
}

// NewRunner returns a runner. journal may be nil.
func NewRunner(journal mutationlog.Repository) *Runner {
	return &Runner{journal: journal}
}

// Run applies m locally, then confirms it. When Confirm fails, m is
// reverted and the Confirm error is returned wrapped.
func (r *Runner) Run(ctx context.Context, m Mutation) error {
	id := uuid.NewString()

	if m.Apply != nil {
		m.Apply()
	}
	r.record(ctx, id, m, mutationlog.StatusApplied, encodePayload(m.Payload), nil)

	err := m.Confirm(ctx)
	if err == nil {
		r.record(ctx, id, m, mutationlog.StatusConfirmed, "", nil)
		return nil
	}

	slog.WarnContext(ctx, "mutation rejected, reverting",
		"mutation", m.Name, "subject", m.Subject, "mutation_id", id, "error", err)

	errs := []string{err.Error()}
	status := mutationlog.StatusReverted
	if m.Revert != nil {
		// the request context may be done already, revert regardless
		if revertErr := m.Revert(context.WithoutCancel(ctx)); revertErr != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to revert mutation",
				"mutation", m.Name, "subject", m.Subject, "mutation_id", id, "error", revertErr)
			errs = append(errs, "revert: "+revertErr.Error())
			status = mutationlog.StatusRevertFailed
		}
	}
	r.record(ctx, id, m, status, "", errs)

	return fmt.Errorf("%s: %w", m.Name, err)
}

func (r *Runner) record(ctx context.Context, id string, m Mutation, status mutationlog.Status, payload string, errs []string) {
	if r == nil || r.journal == nil {
		return
	}
	entry := mutationlog.NewEntry(ctx, id, m.Name, m.Subject, status, payload, errs)
	if err := r.journal.Save(context.WithoutCancel(ctx), entry); err != nil {
		slog.ErrorContext(ctx, "failed to journal mutation", "mutation_id", id, "status", status, "error", err)
	}
}

func encodePayload(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
