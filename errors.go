package pubnode

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrClosed is returned when an operation is attempted on a closed
	// session, or on a publisher or subscriber derived from one.
	ErrClosed = errors.New("pubnode: session closed")

	// ErrNoTransport is returned by Open when Options.Transport is nil.
	ErrNoTransport = errors.New("pubnode: no transport configured")

	// ErrSendLimited is returned by Send when the publisher's token
	// bucket is empty. The message is not buffered or retried.
	ErrSendLimited = errors.New("pubnode: send rate limit exceeded")
)

// PublishError reports a transport-level send failure. A publish that
// finds no matching subscribers is not an error; only a genuine
// transport rejection produces one.
type PublishError struct {
	Topic string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("pubnode: publish on %q: %v", e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// DecodeError reports a payload that could not be decoded as the
// subscriber's message type. It is handed to the subscriber's handler
// rather than dropped, so schema mismatches stay observable.
type DecodeError struct {
	Topic string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pubnode: decode payload on %q: %v", e.Topic, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
