package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrUnauthorized marks a caller lacking the role an action needs.
	ErrUnauthorized = errors.New("caller lacks required role")

	// ErrMissingField marks an incomplete record.
	ErrMissingField = errors.New("missing required field")
)
