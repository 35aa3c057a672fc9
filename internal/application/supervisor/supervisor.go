// Package supervisor provides the application service that owns the
// program table: the set of Workers, and the start/stop/restart/reload
// operations the dispatcher and CLI drive.
package supervisor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Mounadi05/taskmaster/internal/application/configprovider"
	"github.com/Mounadi05/taskmaster/internal/application/notify"
	"github.com/Mounadi05/taskmaster/internal/application/worker"
	"github.com/Mounadi05/taskmaster/internal/domain/config"
	domain "github.com/Mounadi05/taskmaster/internal/domain/process"
)

// Errors returned by Supervisor operations.
var (
	ErrNotRunning      = errors.New("taskmaster: supervisor not running")
	ErrAlreadyRunning  = errors.New("taskmaster: supervisor already running")
	ErrProgramNotFound = errors.New("taskmaster: program not found")
)

// State mirrors the supervisor's own lifecycle, distinct from any single
// worker's state.
type State int

// Supervisor state constants.
const (
	StateStopped State = iota
	StateRunning
)

// Deps bundles the infrastructure adapters a new Worker needs, so
// Supervisor doesn't itself depend on the concrete adapter packages.
type Deps struct {
	Executor domain.Executor
	Logs     worker.LogOpener
	Identity worker.IdentityResolver
	Sink     notify.Sink
}

// Supervisor owns the program table and serializes every structural
// change (start/stop/restart/reload) behind a single lock.
type Supervisor struct {
	mu      sync.RWMutex
	cfg     *config.Config
	loader  configprovider.Loader
	deps    Deps
	workers map[string]*worker.Worker
	state   State
}

// New builds a Supervisor from an already-validated configuration
// snapshot. It does not start any worker; call StartAll for that.
func New(cfg *config.Config, loader configprovider.Loader, deps Deps) (*Supervisor, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("taskmaster: invalid configuration: %w", err)
	}
	if deps.Sink == nil {
		deps.Sink = notify.NoopSink{}
	}

	s := &Supervisor{
		cfg:     cfg,
		loader:  loader,
		deps:    deps,
		workers: make(map[string]*worker.Worker, len(cfg.Programs)),
		state:   StateStopped,
	}
	for name, p := range cfg.Programs {
		s.workers[name] = worker.New(p, deps.Executor, deps.Logs, deps.Identity, deps.Sink)
	}
	return s, nil
}

// StartAll starts every program declared autostart. It is idempotent:
// already-running workers are skipped silently.
func (s *Supervisor) StartAll() []error {
	s.mu.Lock()
	s.state = StateRunning
	workers := make([]*worker.Worker, 0, len(s.workers))
	for name, p := range s.cfg.Programs {
		if p.AutoStart {
			workers = append(workers, s.workers[name])
		}
	}
	s.mu.Unlock()

	var errs []error
	for _, w := range workers {
		if err := w.Start(); err != nil && !errors.Is(err, domain.ErrAlreadyRunning) {
			errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
		}
	}
	return errs
}

// ShutdownAll stops every worker, best-effort, and returns the errors
// encountered. Used by the daemon's signal handler.
func (s *Supervisor) ShutdownAll() []error {
	s.mu.Lock()
	s.state = StateStopped
	workers := make([]*worker.Worker, 0, len(s.workers))
	for _, w := range s.workers {
		workers = append(workers, w)
	}
	s.mu.Unlock()

	var wg sync.WaitGroup
	errCh := make(chan error, len(workers))
	for _, w := range workers {
		wg.Add(1)
		go func(w *worker.Worker) {
			defer wg.Done()
			if err := w.Stop(); err != nil {
				errCh <- fmt.Errorf("%s: %w", w.Name(), err)
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errs
}

// Start starts a single named program (dispatcher's "start" command).
func (s *Supervisor) Start(name string) error {
	w, err := s.find(name)
	if err != nil {
		return err
	}
	return w.Start()
}

// Stop stops a single named program.
func (s *Supervisor) Stop(name string) error {
	w, err := s.find(name)
	if err != nil {
		return err
	}
	return w.Stop()
}

// Restart restarts a single named program.
func (s *Supervisor) Restart(name string) error {
	w, err := s.find(name)
	if err != nil {
		return err
	}
	return w.Restart()
}

// Status returns one worker's snapshot, the dispatcher's "status" command
// for a single program.
func (s *Supervisor) Status(name string) (domain.Status, error) {
	w, err := s.find(name)
	if err != nil {
		return domain.Status{}, err
	}
	return w.Snapshot(), nil
}

// AllStatus returns every worker's snapshot, the dispatcher's "status"
// command with no argument.
func (s *Supervisor) AllStatus() []domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Status, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w.Snapshot())
	}
	return out
}

// Workers returns the live worker set for the Monitor to poll. The slice
// is a snapshot of the map; workers are long-lived pointers so the
// Monitor observes live state through them.
func (s *Supervisor) Workers() []*worker.Worker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*worker.Worker, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w)
	}
	return out
}

func (s *Supervisor) find(name string) (*worker.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, name)
	}
	return w, nil
}

// Reload re-reads the configuration and diffs the program table against
// the running one. Programs present in both tables keep their Worker but
// get SetProgram applied (config fields only take effect on their next
// spawn); programs only in the new table are created and autostarted;
// programs only in the old table are stopped and removed.
func (s *Supervisor) Reload() error {
	s.mu.RLock()
	path := s.cfg.SourcePath
	s.mu.RUnlock()

	newCfg, err := s.loader.Load(path)
	if err != nil {
		return fmt.Errorf("taskmaster: reload failed: %w", err)
	}

	s.mu.Lock()

	var toStart []*worker.Worker
	for name, p := range newCfg.Programs {
		if w, exists := s.workers[name]; exists {
			w.SetProgram(p)
			continue
		}
		w := worker.New(p, s.deps.Executor, s.deps.Logs, s.deps.Identity, s.deps.Sink)
		s.workers[name] = w
		if p.AutoStart {
			toStart = append(toStart, w)
		}
	}

	var toStop []*worker.Worker
	for name, w := range s.workers {
		if _, stillExists := newCfg.Programs[name]; !stillExists {
			toStop = append(toStop, w)
			delete(s.workers, name)
		}
	}

	s.cfg = newCfg
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, w := range toStop {
		wg.Add(1)
		go func(w *worker.Worker) {
			defer wg.Done()
			_ = w.Stop()
		}(w)
	}
	for _, w := range toStart {
		wg.Add(1)
		go func(w *worker.Worker) {
			defer wg.Done()
			_ = w.Start()
		}(w)
	}
	wg.Wait()
	return nil
}
