package repository

import "errors"

// Errors returned by repository implementations. Lookups by id return
// (nil, nil) when nothing matches; these are for writes that need to tell
// the caller why nothing was written.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
