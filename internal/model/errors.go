package model

import (
	"context"
	"errors"
	"net"
)

// Error taxonomy shared by all components.
//
// Network and lookup errors are caught where they happen and recorded as a
// ProbeError annotation; they never abort an investigation. Validation errors
// are the only ones that reach the command line and terminate the process.
var (
	// ErrNetwork wraps connection failures and unexpected HTTP responses.
	ErrNetwork = errors.New("network error")

	// ErrTimeout wraps requests that exceeded their deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrLookup wraps WHOIS and DNS resolution failures.
	ErrLookup = errors.New("lookup error")

	// ErrParse wraps responses whose shape could not be understood.
	ErrParse = errors.New("parse error")

	// ErrValidation wraps malformed input such as an invalid email address.
	ErrValidation = errors.New("validation error")
)

// ErrorKind classifies an error for reporting.
type ErrorKind string

// Error kind constants.
const (
	// ErrorKindNetwork is a connection failure or unusable HTTP response.
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindTimeout is a request that ran out of time.
	ErrorKindTimeout ErrorKind = "timeout"
	// ErrorKindLookup is a WHOIS or DNS failure.
	ErrorKindLookup ErrorKind = "lookup"
	// ErrorKindParse is an unexpected response shape.
	ErrorKindParse ErrorKind = "parse"
	// ErrorKindValidation is malformed input.
	ErrorKindValidation ErrorKind = "validation"
)

// KindOf classifies err. Deadline errors are reported as timeouts even when
// they are not wrapped in ErrTimeout, because net/http surfaces them in
// several different shapes.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	case errors.Is(err, ErrLookup):
		return ErrorKindLookup
	case errors.Is(err, ErrParse):
		return ErrorKindParse
	case errors.Is(err, ErrValidation):
		return ErrorKindValidation
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorKindTimeout
	}
	return ErrorKindNetwork
}

// ProbeError is the serializable annotation recorded in place of a failure.
type ProbeError struct {
	// Kind classifies the failure.
	Kind ErrorKind `json:"kind"`

	// Message is the error text.
	Message string `json:"message"`
}

// NewProbeError builds an annotation from err. It returns nil for a nil error.
func NewProbeError(err error) *ProbeError {
	if err == nil {
		return nil
	}
	return &ProbeError{
		Kind:    KindOf(err),
		Message: err.Error(),
	}
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	return string(e.Kind) + ": " + e.Message
}
