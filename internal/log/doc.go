// Package log provides the slog setup used by every fundboard command.
//
// Loggers are plain *slog.Logger values whose handler is a SecureHandler.
// The handler masks attributes that look like credentials before they
// reach the output:
//   - attribute keys such as token, secret, password, authorization, cookie
//   - values shaped like bearer tokens or JWTs
//   - query parameters of URL values whose names look like credentials
//     (campaign share links frequently carry such tokens)
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	logger.Warn("stored difference disagrees with goal - raised",
//	    "title", c.Title,
//	    "url", c.URL, // "https://example.org/c?token=***REDACTED***"
//	)
package log
