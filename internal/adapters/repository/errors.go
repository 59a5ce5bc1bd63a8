package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrIdentityMissing  = errors.New("record carries no run identity or submission timestamp")
	ErrStaleSubmission  = errors.New("a newer record with the same run identity is already stored")
	ErrStorageIO        = errors.New("storage operation failed")
	ErrDuplicateRemoval = errors.New("stale duplicate could not be removed")
)
