package paybyrd

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed     = errors.New("paybyrd request failed")
	ErrMalformedResponse = errors.New("malformed paybyrd response")
)

// Error is returned for every call that did not produce a usable 2xx
// response. StatusCode is 0 when no response arrived (transport failure or
// timeout).
type Error struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("paybyrd %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("paybyrd %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRequestFailed}
	}
	return []error{ErrRequestFailed, e.Err}
}

func malformed(detail string) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, detail)
}
