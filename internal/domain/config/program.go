// Package config provides the domain value objects for the program
// table: the immutable declarations loaded from configuration.
package config

// AutoRestart selects when the Monitor should respawn a worker after its
// child exits or fails to start.
type AutoRestart string

// AutoRestart policy constants.
const (
	// AutoRestartAlways always attempts a restart, bounded by startretries.
	AutoRestartAlways AutoRestart = "always"
	// AutoRestartNever never restarts automatically.
	AutoRestartNever AutoRestart = "never"
	// AutoRestartUnexpected restarts only when the exit code is not in
	// the program's exitcodes set.
	AutoRestartUnexpected AutoRestart = "unexpected"
)

// StdStream describes where a child's stdout or stderr should go.
type StdStream struct {
	// Path is the destination file path; empty means discard.
	Path string
	// MaxBytes, when non-zero, requests size-based rotation of Path via
	// the external rotator (gopkg.in/natefinch/lumberjack.v2 in this
	// repo's infrastructure layer).
	MaxBytes int64
	// Backups is the number of rotated files to retain.
	Backups int
}

// Program is the immutable declaration of one managed child process.
type Program struct {
	// Name is the unique key for this program.
	Name string
	// Cmd is the argv; Cmd[0] is the executable.
	Cmd []string
	// NumProcs gates spawning: 0 means the program never spawns; any
	// positive value runs a single child.
	NumProcs int
	// Umask is the three-octal-digit umask string, e.g. "022".
	Umask string
	// WorkingDir is an absolute path, or empty to inherit the daemon's.
	WorkingDir string
	// AutoStart starts the program at daemon startup / on reload-add.
	AutoStart bool
	// AutoRestartPolicy controls Monitor-driven respawns.
	AutoRestartPolicy AutoRestart
	// ExitCodes is the set of exit codes considered "expected"; defaults
	// to {0}.
	ExitCodes map[int]struct{}
	// StartRetries bounds consecutive start attempts without success.
	StartRetries int
	// StartSecs is the minimum uptime before starting is promoted to
	// running.
	StartSecs int
	// StopSignal is the POSIX signal name sent to request graceful stop,
	// e.g. "TERM".
	StopSignal string
	// StopWaitSecs is the grace period between StopSignal and SIGKILL.
	StopWaitSecs int
	// Stdout/Stderr describe the child's output destinations.
	Stdout StdStream
	Stderr StdStream
	// Env overlays the daemon's environment for this program only.
	Env map[string]string
	// User/Group optionally run the child as another identity.
	User  string
	Group string
	// Priority is POSIX niceness in [-20, 19].
	Priority int
	// OnSuccess/OnFailure optionally describe notification routing; the
	// core only needs to know whether they're configured, since actual
	// delivery is an external collaborator.
	OnSuccess *NotifyBlock
	OnFailure *NotifyBlock
}

// NotifyBlock marks that a program wants notifications on a given outcome.
// Its contents (e.g. SMTP routing) belong to the external notification
// sink, not the core.
type NotifyBlock struct {
	Enabled bool
}

// DefaultExitCodes returns the {0} singleton set used when a program omits
// exitcodes.
func DefaultExitCodes() map[int]struct{} {
	return map[int]struct{}{0: {}}
}
