package process

import "time"

// Status is a read-only snapshot of a worker suitable for serialisation
// over the wire protocol.
type Status struct {
	// Name is the program name.
	Name string
	// State is the current lifecycle state.
	State State
	// PID is the live child pid, or 0 when no child is live.
	PID int
	// Uptime is how long the current child has been alive; zero when not
	// running.
	Uptime time.Duration
	// Restarts is the number of successful restarts observed.
	Restarts int
	// Retries is the number of start attempts since the last user-issued
	// start.
	Retries int
	// ExitCode is the last recorded exit code.
	ExitCode int
	// StoppedByUser reports whether the worker was stopped by an explicit
	// user command (as opposed to the Monitor).
	StoppedByUser bool
}
