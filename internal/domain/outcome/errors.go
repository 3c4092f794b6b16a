package outcome

import "errors"

// Sentinel kinds for outcome errors.
var (
	ErrUnrecognizedCode = errors.New("unrecognized outcome code")
)
