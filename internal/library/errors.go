package library

import "errors"

// Sentinel errors returned by Store and Tx. Callers match them with
// errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrConstraint = errors.New("constraint violation")
)
