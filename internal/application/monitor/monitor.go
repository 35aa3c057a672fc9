// Package monitor implements the Health Monitor: a single background
// loop that polls every worker and respawns the ones that died and are
// eligible for an automatic restart.
//
// ShouldAutoRestart() is a pure query and Poll() only records the
// transitions it observes; only the Monitor decides to call Respawn(),
// keeping eligibility checks free of side effects.
package monitor

import (
	"context"
	"log"
	"time"

	"github.com/Mounadi05/taskmaster/internal/application/worker"
)

// DefaultInterval is how often the Monitor polls the program table when
// no interval is configured.
const DefaultInterval = 1 * time.Second

// WorkerSource supplies the set of workers to poll each tick, satisfied by
// *supervisor.Supervisor.
type WorkerSource interface {
	Workers() []*worker.Worker
}

// Monitor runs the polling loop.
type Monitor struct {
	source   WorkerSource
	interval time.Duration
	logger   *log.Logger
}

// New builds a Monitor. A zero interval selects DefaultInterval and a nil
// logger falls back to log.Default().
func New(source WorkerSource, interval time.Duration, logger *log.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{source: source, interval: interval, logger: logger}
}

// Run blocks, ticking every interval until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick()
		}
	}
}

// tick polls every worker once and respawns the ones eligible for an
// automatic restart.
func (m *Monitor) tick() {
	for _, w := range m.source.Workers() {
		w.Poll()
		if w.State().HasLiveChild() {
			continue
		}
		if w.ShouldAutoRestart() {
			if err := w.Respawn(); err != nil {
				m.logger.Printf("monitor: respawn %s failed: %v", w.Name(), err)
			}
		}
	}
}
