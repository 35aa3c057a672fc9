package worker

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mounadi05/taskmaster/internal/domain/config"
	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

// fakeExecutor is an in-memory stand-in for domain.Executor so tests
// don't spawn real processes.
type fakeExecutor struct {
	startErr  error
	nextPID   int
	waitCh    chan domain.ExitResult
	stopCalls int
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{nextPID: 100, waitCh: make(chan domain.ExitResult, 1)}
}

func (f *fakeExecutor) Start(ctx context.Context, spec domain.Spec) (int, <-chan domain.ExitResult, error) {
	if f.startErr != nil {
		return 0, nil, f.startErr
	}
	f.nextPID++
	return f.nextPID, f.waitCh, nil
}

func (f *fakeExecutor) Stop(pid int, sig os.Signal, timeout time.Duration) error {
	f.stopCalls++
	return nil
}

func (f *fakeExecutor) Signal(pid int, sig os.Signal) error { return nil }

func testProgram() *config.Program {
	return &config.Program{
		Name:              "demo",
		Cmd:               []string{"/bin/true"},
		NumProcs:          1,
		AutoRestartPolicy: config.AutoRestartAlways,
		ExitCodes:         config.DefaultExitCodes(),
		StartRetries:      2,
		StartSecs:         1,
		StopSignal:        "TERM",
		StopWaitSecs:      1,
	}
}

func TestStartTransitionsToStarting(t *testing.T) {
	p := testProgram()
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	assert.Equal(t, domain.StateStarting, w.State())
	assert.NotZero(t, w.PID())
}

func TestStartAlreadyRunning(t *testing.T) {
	p := testProgram()
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	err := w.Start()
	assert.ErrorIs(t, err, domain.ErrAlreadyRunning)
}

func TestPollPromotesToRunningAfterStartSecs(t *testing.T) {
	p := testProgram()
	p.StartSecs = 0
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	w.Poll()
	assert.Equal(t, domain.StateRunning, w.State())
}

func TestPollObservesEarlyExitAsFatal(t *testing.T) {
	p := testProgram()
	p.StartSecs = 5
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	exec.waitCh <- domain.ExitResult{Code: 1}
	w.Poll()
	assert.Equal(t, domain.StateFatal, w.State())
}

func TestShouldAutoRestartRespectsStoppedByUser(t *testing.T) {
	p := testProgram()
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	assert.False(t, w.ShouldAutoRestart())
}

func TestShouldAutoRestartBoundedByStartRetries(t *testing.T) {
	p := testProgram()
	p.StartRetries = 1
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	assert.True(t, w.ShouldAutoRestart(), "first retry within bound")

	exec.waitCh <- domain.ExitResult{Code: 1}
	w.Poll()
	require.NoError(t, w.Respawn())
	exec.waitCh <- domain.ExitResult{Code: 1}
	w.Poll()
	assert.False(t, w.ShouldAutoRestart(), "exceeds startretries=1")
}

func TestStopIdempotentWhenNotRunning(t *testing.T) {
	p := testProgram()
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	assert.NoError(t, w.Stop())
}

func TestRestartIncrementsRestartCount(t *testing.T) {
	p := testProgram()
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	require.NoError(t, w.Restart())
	assert.Equal(t, 1, w.Snapshot().Restarts)
}

func TestNumProcsZeroNeverSpawns(t *testing.T) {
	p := testProgram()
	p.NumProcs = 0
	exec := newFakeExecutor()
	w := New(p, exec, nil, nil, nil)

	require.NoError(t, w.Start())
	assert.Equal(t, domain.StateStopped, w.State())
	assert.Zero(t, w.PID())
}
