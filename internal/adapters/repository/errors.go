package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrSlotTaken       = errors.New("slot already holds an event")
	ErrVersionConflict = errors.New("event version conflict")
	ErrDuplicateID     = errors.New("duplicate record id")
)
