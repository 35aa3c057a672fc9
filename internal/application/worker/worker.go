// Package worker implements the Program Worker: the lifecycle state
// machine for a single managed child process.
package worker

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Mounadi05/taskmaster/internal/domain/config"
	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

// Worker tracks the mutable runtime record for one managed program. It
// is safe for concurrent use; callers (Supervisor, Monitor) serialize
// state-changing calls through their own lock, but Worker also guards its
// own fields so a snapshot is never read mid-transition.
type Worker struct {
	mu sync.Mutex

	program  *config.Program
	executor domain.Executor
	sink     notifier
	logs     LogOpener
	identity IdentityResolver

	status        domain.State
	pid           int
	startTime     time.Time
	stopTime      time.Time
	exitCode      int
	restartCount  int
	retryCount    int
	stoppedByUser bool

	waitCh       <-chan domain.ExitResult
	stdoutCloser io.Closer
	stderrCloser io.Closer
}

// notifier is the minimal slice of notify.Sink Worker needs, declared
// here so the worker package does not import the notify package.
type notifier interface {
	Notify(program string, action domain.EventType, success bool, errText string)
}

// New creates a Worker in the stopped state for the given program.
func New(program *config.Program, executor domain.Executor, logs LogOpener, identity IdentityResolver, sink notifier) *Worker {
	return &Worker{
		program:  program,
		executor: executor,
		logs:     logs,
		identity: identity,
		sink:     sink,
		status:   domain.StateStopped,
	}
}

// Name returns the program name.
func (w *Worker) Name() string {
	return w.program.Name
}

// State returns the current lifecycle state.
func (w *Worker) State() domain.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// PID returns the live child pid, or 0 when there is none.
func (w *Worker) PID() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pid
}

// Program returns the worker's current spec.
func (w *Worker) Program() *config.Program {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.program
}

// SetProgram updates the worker's spec in place. This never stops a
// running child by itself; the Supervisor decides whether the change
// warrants a restart.
func (w *Worker) SetProgram(p *config.Program) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.program = p
}

// Start is the user-initiated start operation. It resets retry_count and
// clears stopped_by_user before attempting to spawn.
func (w *Worker) Start() error {
	return w.start(true)
}

// Respawn is the Monitor-initiated start: it does not reset retry_count,
// since retry_count tracks attempts since the last *user*-issued start.
func (w *Worker) Respawn() error {
	return w.start(false)
}

func (w *Worker) start(userInitiated bool) error {
	w.mu.Lock()
	if w.status.HasLiveChild() {
		w.mu.Unlock()
		return domain.ErrAlreadyRunning
	}
	if w.program.NumProcs == 0 {
		w.status = domain.StateStopped
		w.mu.Unlock()
		return nil
	}
	if userInitiated {
		w.stoppedByUser = false
		w.retryCount = 0
	}
	w.retryCount++
	w.mu.Unlock()

	uid, gid, err := w.resolveIdentity()
	if err != nil {
		w.mu.Lock()
		w.status = domain.StateFatal
		w.mu.Unlock()
		w.notify(domain.EventStart, false, err.Error())
		return err
	}

	stdout, stderr, err := w.openSinks()
	if err != nil {
		w.mu.Lock()
		w.status = domain.StateFatal
		w.mu.Unlock()
		w.notify(domain.EventStart, false, err.Error())
		return err
	}

	umask, err := parseUmask(w.program.Umask)
	if err != nil {
		w.closeSinks(stdout, stderr)
		w.mu.Lock()
		w.status = domain.StateFatal
		w.mu.Unlock()
		w.notify(domain.EventStart, false, err.Error())
		return err
	}

	spec := domain.NewSpec(domain.SpecParams{
		Command:  w.program.Cmd[0],
		Args:     append([]string{}, w.program.Cmd[1:]...),
		Dir:      w.program.WorkingDir,
		Env:      flattenEnv(w.program.Env),
		UID:      uid,
		GID:      gid,
		Umask:    umask,
		Priority: w.program.Priority,
		Stdout:   stdout,
		Stderr:   stderr,
	})

	pid, wait, err := w.executor.Start(context.Background(), spec)
	if err != nil {
		w.closeSinks(stdout, stderr)
		w.mu.Lock()
		w.status = domain.StateFatal
		w.mu.Unlock()
		w.notify(domain.EventStart, false, err.Error())
		return err
	}

	w.mu.Lock()
	w.pid = pid
	w.waitCh = wait
	w.startTime = time.Now()
	w.status = domain.StateStarting
	if sc, ok := stdout.(io.Closer); ok {
		w.stdoutCloser = sc
	}
	if sc, ok := stderr.(io.Closer); ok {
		w.stderrCloser = sc
	}
	w.mu.Unlock()

	w.notify(domain.EventStart, true, "")
	return nil
}

func (w *Worker) resolveIdentity() (uid, gid int, err error) {
	if w.program.User == "" && w.program.Group == "" {
		return -1, -1, nil
	}
	if w.identity == nil {
		return -1, -1, fmt.Errorf("taskmaster: identity resolver not configured")
	}
	return w.identity.Resolve(w.program.User, w.program.Group)
}

func (w *Worker) openSinks() (stdout, stderr io.Writer, err error) {
	if w.logs == nil {
		return nil, nil, nil
	}
	so, err := w.logs.Open(w.program.Stdout)
	if err != nil {
		return nil, nil, fmt.Errorf("opening stdout sink: %w", err)
	}
	se, err := w.logs.Open(w.program.Stderr)
	if err != nil {
		if so != nil {
			_ = so.Close()
		}
		return nil, nil, fmt.Errorf("opening stderr sink: %w", err)
	}
	return so, se, nil
}

func (w *Worker) closeSinks(stdout, stderr io.Writer) {
	if c, ok := stdout.(io.Closer); ok && c != nil {
		_ = c.Close()
	}
	if c, ok := stderr.(io.Closer); ok && c != nil {
		_ = c.Close()
	}
}

// Stop is idempotent on an already-stopped worker, otherwise sends
// stopsignal and waits up to stoptsecs before escalating to SIGKILL.
func (w *Worker) Stop() error {
	w.mu.Lock()
	w.stoppedByUser = true
	if !w.status.HasLiveChild() {
		w.mu.Unlock()
		return nil
	}
	pid := w.pid
	stopWait := time.Duration(w.program.StopWaitSecs) * time.Second
	sigName := w.program.StopSignal
	w.status = domain.StateStopping
	w.mu.Unlock()

	sig, err := resolveSignal(sigName)
	if err != nil {
		w.notify(domain.EventStop, false, err.Error())
		return err
	}

	if err := w.executor.Stop(pid, sig, stopWait); err != nil {
		w.notify(domain.EventStop, false, err.Error())
		return err
	}

	w.mu.Lock()
	w.drainExitLocked()
	w.stopTime = time.Now()
	w.pid = 0
	w.status = domain.StateStopped
	w.mu.Unlock()

	w.notify(domain.EventStop, true, "")
	return nil
}

// drainExitLocked consumes a pending exit result without blocking, so
// exit_code reflects the just-stopped child. Must be called with mu held.
func (w *Worker) drainExitLocked() {
	if w.waitCh == nil {
		return
	}
	select {
	case res := <-w.waitCh:
		w.exitCode = res.Code
	default:
	}
	w.closeCurrentSinksLocked()
}

func (w *Worker) closeCurrentSinksLocked() {
	if w.stdoutCloser != nil {
		_ = w.stdoutCloser.Close()
		w.stdoutCloser = nil
	}
	if w.stderrCloser != nil {
		_ = w.stderrCloser.Close()
		w.stderrCloser = nil
	}
}

// Restart is stop() followed by a user-initiated start(), incrementing
// restart_count only when the start succeeds.
func (w *Worker) Restart() error {
	if err := w.Stop(); err != nil {
		return err
	}
	err := w.Start()
	if err == nil {
		w.mu.Lock()
		w.restartCount++
		w.mu.Unlock()
		w.notify(domain.EventRestart, true, "")
	} else {
		w.notify(domain.EventRestart, false, err.Error())
	}
	return err
}

// Poll performs the Monitor's non-blocking status refresh.
func (w *Worker) Poll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.status {
	case domain.StateStarting, domain.StateRunning:
	default:
		return
	}

	select {
	case res, ok := <-w.waitCh:
		if !ok {
			return
		}
		w.exitCode = res.Code
		w.pid = 0
		w.closeCurrentSinksLocked()
		if time.Since(w.startTime) < time.Duration(w.program.StartSecs)*time.Second {
			w.status = domain.StateFatal
		} else {
			w.status = domain.StateExited
		}
	default:
		if w.status == domain.StateStarting && time.Since(w.startTime) >= time.Duration(w.program.StartSecs)*time.Second {
			w.status = domain.StateRunning
		}
	}
}

// ShouldAutoRestart is a pure query: whether the Monitor should respawn
// this worker after the death poll() just observed.
//
// The bound is evaluated as retry_count <= startretries, so that
// startretries retries plus the initial attempt total startretries+1
// attempts between user-initiated starts. See DESIGN.md for the
// reasoning behind this boundary.
func (w *Worker) ShouldAutoRestart() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stoppedByUser {
		return false
	}
	retries := w.program.StartRetries

	switch w.program.AutoRestartPolicy {
	case config.AutoRestartAlways:
		return w.retryCount <= retries
	case config.AutoRestartUnexpected:
		if _, expected := w.program.ExitCodes[w.exitCode]; !expected {
			return w.retryCount <= retries
		}
	}

	if w.status == domain.StateFatal {
		return w.retryCount <= retries
	}
	return false
}

// Snapshot returns a point-in-time status_snapshot() view of the worker.
func (w *Worker) Snapshot() domain.Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	var uptime time.Duration
	if w.status == domain.StateRunning {
		uptime = time.Since(w.startTime)
	}

	return domain.Status{
		Name:          w.program.Name,
		State:         w.status,
		PID:           w.pid,
		Uptime:        uptime,
		Restarts:      w.restartCount,
		Retries:       w.retryCount,
		ExitCode:      w.exitCode,
		StoppedByUser: w.stoppedByUser,
	}
}

func (w *Worker) notify(action domain.EventType, success bool, errText string) {
	if w.sink == nil {
		return
	}
	w.sink.Notify(w.program.Name, action, success, errText)
}

// flattenEnv overlays env onto the daemon's own environment, in
// KEY=VALUE form.
func flattenEnv(overlay map[string]string) []string {
	base := processEnviron()
	merged := make(map[string]string, len(base)+len(overlay))
	for _, kv := range base {
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			merged[kv[:idx]] = kv[idx+1:]
		}
	}
	for k, v := range overlay {
		merged[k] = v
	}
	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	return out
}

func parseUmask(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.ParseInt(s, 8, 32)
	if err != nil {
		return -1, fmt.Errorf("taskmaster: invalid umask %q: %w", s, err)
	}
	return int(v), nil
}
