// Package mutationlog defines the journal of optimistic mutations.
//
// Every optimistic change the gateway makes to a visitor's local state is
// recorded as a sequence of entries: APPLIED when the local change is made,
// then CONFIRMED when the remote API accepts it, or REVERTED (REVERT_FAILED)
// when it is rejected and the local change is undone. The trace_id column
// links an entry to the distributed trace of the request that caused it.
package mutationlog

import "time"

// Status is the lifecycle state of a mutation.
type Status string

const (
	StatusApplied      Status = "APPLIED"
	StatusConfirmed    Status = "CONFIRMED"
	StatusReverted     Status = "REVERTED"
	StatusRevertFailed Status = "REVERT_FAILED"
)

// Entry is a single row of the journal.
type Entry struct {
	// MutationID identifies one Run. Several rows share it.
	MutationID string `json:"mutation_id"`

	// Name is the mutation kind, e.g. "cart.update_quantity".
	Name string `json:"name"`

	Status Status `json:"status"`

	// Subject is the thing being changed, e.g. "cart_item:12".
	Subject string `json:"subject"`

	// Payload is the JSON input of the mutation. Written on APPLIED only.
	Payload string `json:"payload,omitempty"`

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string `json:"error_messages,omitempty"`

	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
