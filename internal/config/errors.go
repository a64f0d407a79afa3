package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and the Apply* methods and
// can be checked with errors.Is().
var (
	// ErrInvalidSortKey is returned when the configured sort key is not one
	// of amount_raised or difference_from_goal.
	ErrInvalidSortKey = errors.New("invalid sort key: must be amount_raised or difference_from_goal")

	// ErrInvalidDirection is returned when the configured order is not asc or desc.
	ErrInvalidDirection = errors.New("invalid sort order: must be asc or desc")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidListenAddr is returned when the web listen address is not host:port.
	ErrInvalidListenAddr = errors.New("invalid listen address: must be host:port")

	// ErrInvalidShutdownTimeout is returned when the shutdown timeout is not positive.
	ErrInvalidShutdownTimeout = errors.New("invalid shutdown timeout: must be positive")

	// ErrInvalidBoolean is returned when an environment variable or config
	// value that should be a boolean cannot be parsed.
	ErrInvalidBoolean = errors.New("invalid boolean value")
)
