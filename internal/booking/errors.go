// Package booking implements the slot reservation engine: the atomic
// reserve-on-create / release-on-cancel protocol coupling the schedule
// capacity rows to the appointment ledger.
package booking

import "errors"

// Typed failures surfaced by the engine.  All of them are detected
// inside the transaction and cause a full rollback before being
// returned; the engine never retries on its own.
var (
	// ErrInvalidInput marks a request missing a required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSuchSlot means no capacity was ever configured for the
	// requested (doctor, date, period) key.
	ErrNoSuchSlot = errors.New("no capacity configured for this time slot")

	// ErrSlotFull means the slot exists but has no remaining capacity.
	ErrSlotFull = errors.New("this time slot is fully booked")

	// ErrNotFound means the appointment id is unknown on release.
	ErrNotFound = errors.New("appointment not found")

	// ErrAlreadyCancelled guards release idempotency: a second release
	// of the same appointment fails without touching the slot count.
	ErrAlreadyCancelled = errors.New("appointment already cancelled")

	// ErrContended wraps a lock-wait timeout or deadlock from the
	// store.  Callers may retry; the engine does not.
	ErrContended = errors.New("slot contended, please retry")
)
