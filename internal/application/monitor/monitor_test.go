package monitor

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mounadi05/taskmaster/internal/application/worker"
	"github.com/Mounadi05/taskmaster/internal/domain/config"
	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

type stubExecutor struct {
	waitCh chan domain.ExitResult
}

func (s *stubExecutor) Start(ctx context.Context, spec domain.Spec) (int, <-chan domain.ExitResult, error) {
	return 7, s.waitCh, nil
}
func (s *stubExecutor) Stop(pid int, sig os.Signal, timeout time.Duration) error { return nil }
func (s *stubExecutor) Signal(pid int, sig os.Signal) error                      { return nil }

type fakeSource struct {
	workers []*worker.Worker
}

func (s *fakeSource) Workers() []*worker.Worker { return s.workers }

func TestTickPollsAndRespawnsDeadWorkers(t *testing.T) {
	exec := &stubExecutor{waitCh: make(chan domain.ExitResult, 1)}
	p := &config.Program{
		Name:              "svc",
		Cmd:               []string{"/bin/true"},
		NumProcs:          1,
		AutoRestartPolicy: config.AutoRestartAlways,
		ExitCodes:         config.DefaultExitCodes(),
		StartRetries:      2,
		StartSecs:         0,
	}
	w := worker.New(p, exec, nil, nil, nil)
	require.NoError(t, w.Start())

	exec.waitCh <- domain.ExitResult{Code: 1}

	src := &fakeSource{workers: []*worker.Worker{w}}
	m := New(src, 10*time.Millisecond, nil)
	m.tick()

	assert.Equal(t, domain.StateStarting, w.State())
}
