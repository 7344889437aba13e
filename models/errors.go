package models

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf("%w: ...") so helper.GetStatusCode can map them to HTTP codes
// with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
