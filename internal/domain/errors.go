package domain

import "errors"

// Error kinds for the whole service. Handlers map them to HTTP statuses with
// errors.Is, so services wrap them instead of encoding the kind in the
// message text.
var (
	// ErrNotFound - a referenced id or name does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict - a natural-key duplicate was detected.
	ErrConflict = errors.New("already exists")
	// ErrValidation - a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
)
