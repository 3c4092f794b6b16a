package reconcile

import "errors"

// Sentinel kinds for reconciliation errors.
var (
	// ErrSlotResolved rejects submissions against a slot whose result
	// is already canonical.
	ErrSlotResolved = errors.New("slot already resolved")

	// ErrSlotDisputed rejects manager submissions against a disputed
	// slot; only a commissioner ruling can move it forward.
	ErrSlotDisputed = errors.New("slot is disputed")

	// ErrNotDisputed rejects rulings against events that were never
	// disputed.
	ErrNotDisputed = errors.New("event is not disputed")

	// ErrMissingField marks an invalid or incomplete submission.
	ErrMissingField = errors.New("invalid submission")
)
