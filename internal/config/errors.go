package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() while users get a readable message.
var (
	// ErrNoTarget is returned when no email address is given.
	ErrNoTarget = errors.New("no target specified: provide an email address")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the probe concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidRateLimit is returned when the request rate is negative.
	// Use 0 to disable the limiter.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrUnknownSentimentProvider is returned for a sentiment provider other
	// than "openai" or "none".
	ErrUnknownSentimentProvider = errors.New("unknown sentiment provider: use \"openai\" or \"none\"")
)
