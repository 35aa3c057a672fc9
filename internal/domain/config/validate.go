package config

import (
	"errors"
	"fmt"
)

// Validation sentinel errors.
var (
	ErrNoPrograms           = errors.New("taskmaster: no programs configured")
	ErrEmptyProgramName     = errors.New("taskmaster: program name is required")
	ErrEmptyCmd             = errors.New("taskmaster: program cmd is required")
	ErrNegativeNumProcs     = errors.New("taskmaster: numprocs must be >= 0")
	ErrNegativeStartRetries = errors.New("taskmaster: startretries must be >= 0")
	ErrNegativeStartSecs    = errors.New("taskmaster: startsecs must be >= 0")
	ErrNegativeStopWaitSecs = errors.New("taskmaster: stoptsecs must be >= 0")
	ErrInvalidPriority      = errors.New("taskmaster: priority must be in [-20, 19]")
	ErrInvalidUmask         = errors.New("taskmaster: umask must be three octal digits")
	ErrInvalidAutoRestart   = errors.New("taskmaster: autorestart must be always, never, or unexpected")
)

// Validate checks structural invariants of a Config. An invalid
// configuration is a load-time (or reload-time) failure and is never
// partially applied.
func Validate(cfg *Config) error {
	if len(cfg.Programs) == 0 {
		return ErrNoPrograms
	}
	for name, p := range cfg.Programs {
		if name == "" {
			return ErrEmptyProgramName
		}
		if err := validateProgram(p); err != nil {
			return fmt.Errorf("program %q: %w", name, err)
		}
	}
	return nil
}

func validateProgram(p *Program) error {
	if p.Name == "" {
		return ErrEmptyProgramName
	}
	if len(p.Cmd) == 0 || p.Cmd[0] == "" {
		return ErrEmptyCmd
	}
	if p.NumProcs < 0 {
		return ErrNegativeNumProcs
	}
	if p.StartRetries < 0 {
		return ErrNegativeStartRetries
	}
	if p.StartSecs < 0 {
		return ErrNegativeStartSecs
	}
	if p.StopWaitSecs < 0 {
		return ErrNegativeStopWaitSecs
	}
	if p.Priority < -20 || p.Priority > 19 {
		return ErrInvalidPriority
	}
	if p.Umask != "" {
		if len(p.Umask) != 3 {
			return ErrInvalidUmask
		}
		for _, c := range p.Umask {
			if c < '0' || c > '7' {
				return ErrInvalidUmask
			}
		}
	}
	switch p.AutoRestartPolicy {
	case AutoRestartAlways, AutoRestartNever, AutoRestartUnexpected, "":
	default:
		return ErrInvalidAutoRestart
	}
	return nil
}
