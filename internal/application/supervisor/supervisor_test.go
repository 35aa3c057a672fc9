package supervisor

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

type fakeExecutor struct{}

func (fakeExecutor) Start(ctx context.Context, spec domain.Spec) (int, <-chan domain.ExitResult, error) {
	ch := make(chan domain.ExitResult, 1)
	return 42, ch, nil
}
func (fakeExecutor) Stop(pid int, sig os.Signal, timeout time.Duration) error { return nil }
func (fakeExecutor) Signal(pid int, sig os.Signal) error                      { return nil }

type fakeLoader struct {
	cfg *config.Config
}

func (f *fakeLoader) Load(path string) (*config.Config, error) {
	return f.cfg, nil
}

func baseConfig() *config.Config {
	return &config.Config{
		Programs: map[string]*config.Program{
			"web": {
				Name:         "web",
				Cmd:          []string{"/bin/true"},
				NumProcs:     1,
				AutoStart:    true,
				StartRetries: 1,
				StartSecs:    0,
				StopSignal:   "TERM",
				StopWaitSecs: 1,
				ExitCodes:    config.DefaultExitCodes(),
			},
		},
		Server:     config.ServerConfig{Type: config.TransportSocket, Host: "127.0.0.1", Port: config.DefaultSocketPort},
		SourcePath: "unused",
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(&config.Config{}, &fakeLoader{}, Deps{Executor: fakeExecutor{}})
	assert.Error(t, err)
}

func TestStartAllAutostartsAndStatusReportsIt(t *testing.T) {
	sup, err := New(baseConfig(), &fakeLoader{}, Deps{Executor: fakeExecutor{}})
	require.NoError(t, err)

	errs := sup.StartAll()
	assert.Empty(t, errs)

	st, err := sup.Status("web")
	require.NoError(t, err)
	assert.Equal(t, domain.StateStarting, st.State)
}

func TestStartStopUnknownProgram(t *testing.T) {
	sup, err := New(baseConfig(), &fakeLoader{}, Deps{Executor: fakeExecutor{}})
	require.NoError(t, err)

	assert.ErrorIs(t, sup.Start("missing"), ErrProgramNotFound)
	assert.ErrorIs(t, sup.Stop("missing"), ErrProgramNotFound)
}

func TestReloadAddsAndRemovesPrograms(t *testing.T) {
	cfg := baseConfig()
	loader := &fakeLoader{cfg: cfg}
	sup, err := New(cfg, loader, Deps{Executor: fakeExecutor{}})
	require.NoError(t, err)
	sup.StartAll()

	newCfg := &config.Config{
		Programs: map[string]*config.Program{
			"batch": {
				Name:         "batch",
				Cmd:          []string{"/bin/true"},
				NumProcs:     1,
				AutoStart:    true,
				StartRetries: 1,
				StopSignal:   "TERM",
				StopWaitSecs: 1,
				ExitCodes:    config.DefaultExitCodes(),
			},
		},
		Server:     cfg.Server,
		SourcePath: cfg.SourcePath,
	}
	loader.cfg = newCfg

	require.NoError(t, sup.Reload())

	_, err = sup.Status("web")
	assert.ErrorIs(t, err, ErrProgramNotFound)

	_, err = sup.Status("batch")
	assert.NoError(t, err)
}

func TestAllStatusReturnsEveryWorker(t *testing.T) {
	sup, err := New(baseConfig(), &fakeLoader{}, Deps{Executor: fakeExecutor{}})
	require.NoError(t, err)

	all := sup.AllStatus()
	assert.Len(t, all, 1)
}
