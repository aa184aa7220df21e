package player

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTrack is returned by Load when the track metadata is
	// unusable, duration or content length missing or non-positive.
	ErrInvalidTrack = errors.New("track has no usable duration or content length")

	// ErrNoMediaLoaded is returned by operations that need a loaded track
	// when none is present.
	ErrNoMediaLoaded = errors.New("no media loaded")

	// ErrInvalidTransition is returned when an operation is called from a
	// playback state that does not allow it.
	ErrInvalidTransition = errors.New("operation not valid in current playback state")
)

// InitError reports a fatal failure to initialize or start the playback
// backend. Unlike transient network errors it is not retried, the caller is
// expected to surface it and bail out.
type InitError struct {
	Backend string
	Err     error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s transport failed to start: %v", e.Backend, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
