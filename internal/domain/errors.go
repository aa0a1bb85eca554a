package domain

import (
	"errors"
	"fmt"
)

// Domain specific errors shared across services and handlers.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrForbidden  = errors.New("action forbidden")
	ErrBadRequest = errors.New("bad request")
)

// UpstreamError reports a failed call to an external service: a non-success
// status, a non-JSON content type, or an unparseable body. Status carries the
// upstream HTTP code when one was received; Detail is safe to return to
// callers.
type UpstreamError struct {
	Service string // "geocoding" or "overpass"
	Status  int
	Detail  string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream: %s", e.Service, e.Detail)
}
