package repository

import "errors"

// ErrNotFound standard error when a record does not exist or does not belong
// to the caller. The two cases are intentionally indistinguishable.
var ErrNotFound = errors.New("record not found")

// ErrInvalidData invalid identifier or malformed row data
var ErrInvalidData = errors.New("invalid data")
