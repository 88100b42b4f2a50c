package ollama

import (
	"fmt"
	"time"
)

// StatusError indicates the server answered with a non-success HTTP
// status. Client errors (4xx) are never retried.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference server returned HTTP %d", e.Code)
}

// ConnectionError indicates the request never reached the point of
// receiving a response, even after the single retry.
type ConnectionError struct {
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to inference server failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TimeoutError indicates the request deadline elapsed before the stream
// finished.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation timed out after %s", e.After)
}
