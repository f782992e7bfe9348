package order

import "errors"

var (
	// ErrValidation marks a request rejected before touching storage.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an identity mismatch between the authenticated
	// member and the member a request claims to act for.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a booking the member does not own or that does
	// not exist. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)
