package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for directory and watched-list operations
var (
	// ErrTransport indicates a network failure or a non-2xx HTTP status
	ErrTransport = errors.New("movie directory request failed")

	// ErrNotFound indicates the directory answered but had no matching movie
	ErrNotFound = errors.New("movie not found")

	// ErrCancelled indicates the request was superseded or closed.
	// Callers drop it silently.
	ErrCancelled = errors.New("request cancelled")

	// ErrDuplicate indicates the movie is already on the watched list
	ErrDuplicate = errors.New("movie already on watched list")

	// ErrInvalidRating indicates a user rating outside 1..max stars
	ErrInvalidRating = errors.New("invalid rating")
)

// TransportError carries the HTTP status (0 for network failures) and cause
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("movie directory returned status %d", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("movie directory unreachable: %v", e.Err)
	}
	return ErrTransport.Error()
}

func (e *TransportError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrTransport, e.Err}
	}
	return []error{ErrTransport}
}

// NotFoundError carries the directory's own explanation ("Movie not found!",
// "Too many results.")
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// UserMessage returns the inline message shown for a user-visible error
func UserMessage(err error) string {
	var nf *NotFoundError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &nf):
		return nf.Error()
	case errors.Is(err, ErrTransport):
		return "Something went wrong while fetching movies"
	default:
		return err.Error()
	}
}
