//go:build unix

// Package process provides the infrastructure adapter that implements
// domain/process.Executor using os/exec and Unix syscalls.
package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
	"golang.org/x/sys/unix"
)

// umaskMu serializes spawn attempts that need a temporary process umask,
// since syscall.Umask is process-global rather than per-command.
var umaskMu sync.Mutex

// UnixExecutor implements domain.Executor for Unix systems: os/exec plus
// a process group per child so a stop signal reaches the whole group.
type UnixExecutor struct{}

// NewUnixExecutor builds a UnixExecutor.
func NewUnixExecutor() *UnixExecutor {
	return &UnixExecutor{}
}

// Start implements domain.Executor.
func (e *UnixExecutor) Start(ctx context.Context, spec domain.Spec) (pid int, wait <-chan domain.ExitResult, err error) {
	if spec.Command == "" {
		return 0, nil, domain.ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if spec.UID >= 0 || spec.GID >= 0 {
		cmd.SysProcAttr.Credential = &syscall.Credential{
			Uid: uint32(spec.UID),
			Gid: uint32(spec.GID),
		}
	}

	if spec.Umask >= 0 {
		umaskMu.Lock()
		prev := syscall.Umask(spec.Umask)
		err := cmd.Start()
		syscall.Umask(prev)
		umaskMu.Unlock()
		if err != nil {
			return 0, nil, fmt.Errorf("taskmaster: starting process: %w", err)
		}
	} else if err := cmd.Start(); err != nil {
		return 0, nil, fmt.Errorf("taskmaster: starting process: %w", err)
	}

	// Go has no preexec_fn equivalent to apply niceness before exec, so
	// priority is applied to the child immediately after Start returns;
	// a brief window at the very start of the child's life runs at the
	// parent's priority.
	if spec.Priority != 0 {
		_ = unix.Setpriority(unix.PRIO_PROCESS, cmd.Process.Pid, spec.Priority)
	}

	waitCh := make(chan domain.ExitResult, 1)
	go waitForExit(cmd, waitCh)

	return cmd.Process.Pid, waitCh, nil
}

func waitForExit(cmd *exec.Cmd, wait chan<- domain.ExitResult) {
	err := cmd.Wait()
	result := domain.ExitResult{}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.Code = exitErr.ExitCode()
		} else {
			result.Code = -1
			result.Error = err
		}
	}
	wait <- result
	close(wait)
}

// Stop implements domain.Executor: it signals the process group, waits up
// to timeout, and escalates to SIGKILL on timeout.
func (e *UnixExecutor) Stop(pid int, sig os.Signal, timeout time.Duration) error {
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		return fmt.Errorf("taskmaster: resolving process group: %w", err)
	}

	unixSig, ok := sig.(syscall.Signal)
	if !ok {
		unixSig = syscall.SIGTERM
	}
	if err := syscall.Kill(-pgid, unixSig); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return nil
		}
		return fmt.Errorf("taskmaster: signalling process group: %w", err)
	}

	deadline := time.After(timeout)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-deadline:
			_ = syscall.Kill(-pgid, syscall.SIGKILL)
			waitForDeath(pid, tick)
			return nil
		case <-tick.C:
			if err := syscall.Kill(pid, 0); errors.Is(err, syscall.ESRCH) {
				return nil
			}
		}
	}
}

// waitForDeath blocks unconditionally, polling pid's liveness on tick,
// until it is gone. Used after a SIGKILL escalation, which must be
// waited out rather than assumed to have landed immediately.
func waitForDeath(pid int, tick *time.Ticker) {
	for range tick.C {
		if err := syscall.Kill(pid, 0); errors.Is(err, syscall.ESRCH) {
			return
		}
	}
}

// Signal implements domain.Executor.
func (e *UnixExecutor) Signal(pid int, sig os.Signal) error {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("taskmaster: finding process: %w", err)
	}
	return proc.Signal(sig)
}
