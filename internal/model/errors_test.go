package model

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestKindOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"nil", nil, ""},
		{"wrapped timeout", fmt.Errorf("get: %w", ErrTimeout), ErrorKindTimeout},
		{"deadline exceeded", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrorKindTimeout},
		{"net timeout", fmt.Errorf("dial: %w", timeoutError{}), ErrorKindTimeout},
		{"lookup", fmt.Errorf("mx: %w", ErrLookup), ErrorKindLookup},
		{"parse", fmt.Errorf("json: %w", ErrParse), ErrorKindParse},
		{"validation", fmt.Errorf("email: %w", ErrValidation), ErrorKindValidation},
		{"unknown falls back to network", errors.New("connection refused"), ErrorKindNetwork},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tc.err); got != tc.expected {
				t.Errorf("KindOf() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestNewProbeError(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields nil annotation", func(t *testing.T) {
		t.Parallel()
		if NewProbeError(nil) != nil {
			t.Error("expected nil annotation")
		}
	})

	t.Run("records kind and message", func(t *testing.T) {
		t.Parallel()
		pe := NewProbeError(fmt.Errorf("whois example.com: %w", ErrLookup))
		if pe.Kind != ErrorKindLookup {
			t.Errorf("expected lookup kind, got %q", pe.Kind)
		}
		if pe.Message != "whois example.com: lookup error" {
			t.Errorf("unexpected message %q", pe.Message)
		}
		if pe.Error() != "lookup: whois example.com: lookup error" {
			t.Errorf("unexpected Error() %q", pe.Error())
		}
	})
}
