// Package log provides secure logging on top of log/slog.
//
// SecureHandler masks secrets (cookies, bearer tokens, API keys such as the
// sentiment backend key) and partially masks email addresses before records
// reach the underlying handler. Masking applies in verbose mode too, so logs
// can be shared without leaking the investigated address.
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("executing step", "email", "jane@example.com")
//	// ... email=j***@example.com
package log
