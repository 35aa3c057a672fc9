package process

import "errors"

// Sentinel errors for worker operations.
var (
	// ErrAlreadyRunning is returned by start() when the worker is not in
	// a startable state (stopped, exited, fatal).
	ErrAlreadyRunning = errors.New("taskmaster: worker already running")
	// ErrNotRunning is returned by operations that require a live child.
	ErrNotRunning = errors.New("taskmaster: worker not running")
	// ErrUnknownUser is returned when the configured user cannot be
	// resolved to a numeric uid.
	ErrUnknownUser = errors.New("taskmaster: unknown user")
	// ErrUnknownGroup is returned when the configured group cannot be
	// resolved to a numeric gid.
	ErrUnknownGroup = errors.New("taskmaster: unknown group")
	// ErrEmptyCommand is returned when a program spec has no argv.
	ErrEmptyCommand = errors.New("taskmaster: empty command")
)
