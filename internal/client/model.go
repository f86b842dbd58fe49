package client

import "net/http"

// CircuitBreakerResponse is what a breaker execution yields: the response
// with its body already drained.
type CircuitBreakerResponse struct {
	Body       []byte
	StatusCode int
	Header     http.Header
}

// callerAbortedError marks a failure caused by the caller's own context
// ending. It is not held against the upstream host.
type callerAbortedError struct {
	err error
}

func (e *callerAbortedError) Error() string { return e.err.Error() }

func (e *callerAbortedError) Unwrap() error { return e.err }
