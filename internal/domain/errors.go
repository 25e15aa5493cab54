package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Entity names used in messages and error values.
const (
	EntityAlbum  = "Album"
	EntityTrack  = "Track"
	EntityArtist = "Artist"
	EntityBand   = "Band"
	EntityGenre  = "Genre"
	EntityUser   = "User"
)

// NotFoundError represents a referenced id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	if e.Entity == "" && e.ID == "" {
		return "not found"
	}
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ErrServiceNotConfigured is returned by an entity client whose base URL is
// empty.
var ErrServiceNotConfigured = errors.New("service url is not configured")

// UpstreamError is a network or HTTP failure reported by an entity service.
// Its message is the upstream message, unchanged.
type UpstreamError struct {
	Service string
	Op      string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service: %s failed", e.Service, e.Op)
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError is raised for malformed arguments.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type ErrorKind string

const (
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindUpstream   ErrorKind = "UPSTREAM_FAILURE"
	KindValidation ErrorKind = "VALIDATION_FAILURE"
	KindInternal   ErrorKind = "INTERNAL"
)

// KindOf classifies err into the gateway error taxonomy.
func KindOf(err error) ErrorKind {
	var upstream *UpstreamError
	var validation *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &upstream):
		return KindUpstream
	default:
		return KindInternal
	}
}

// Message returns the message a caller should see: the innermost cause,
// stripped of the wrapping context added along the way.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return errors.Cause(err).Error()
}
