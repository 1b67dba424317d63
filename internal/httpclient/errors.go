package httpclient

import "errors"

// ErrInvalidProxyAddress is returned when the proxy address format is invalid.
// Expected format is "host:port".
var ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
