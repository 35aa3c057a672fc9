// Package bootstrap wires the application's dependency graph via Google
// Wire, isolating construction from cmd/taskmasterd's main.go.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/Mounadi05/taskmaster/internal/application/dispatch"
	"github.com/Mounadi05/taskmaster/internal/application/monitor"
	"github.com/Mounadi05/taskmaster/internal/application/supervisor"
	"github.com/Mounadi05/taskmaster/internal/domain/config"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/config/viperprovider"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/daemonctl"
	infrahttp "github.com/Mounadi05/taskmaster/internal/infrastructure/transport/http"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/transport/socket"
)

// DefaultPIDFilePath is where Daemon Control arbitrates a single running
// instance when the caller doesn't override it.
const DefaultPIDFilePath = "/var/run/taskmasterd.pid"

// App is the root object of the dependency graph Wire produces.
type App struct {
	Supervisor *supervisor.Supervisor
	Config     *config.Config
}

// NewApp builds an App from its wired dependencies.
func NewApp(sup *supervisor.Supervisor, cfg *config.Config) *App {
	return &App{Supervisor: sup, Config: cfg}
}

// Run starts the supervisor, the Monitor, and the configured transport,
// then blocks on termination signals. It is the body cmd/taskmasterd's
// main.go delegates to. When watch is true, a file watcher on the
// configuration's source path triggers the same reload path as SIGHUP.
func (a *App) Run(pidFilePath string, watch bool) error {
	pf := daemonctl.NewPIDFile(pidFilePath)
	if err := pf.Acquire(); err != nil {
		return err
	}
	defer func() { _ = pf.Release() }()

	if errs := a.Supervisor.StartAll(); len(errs) > 0 {
		for _, err := range errs {
			log.Printf("taskmasterd: start error: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon := monitor.New(a.Supervisor, monitor.DefaultInterval, nil)
	go mon.Run(ctx)

	d := dispatch.New(a.Supervisor)
	stopTransport, err := a.startTransport(d)
	if err != nil {
		cancel()
		return fmt.Errorf("taskmaster: starting transport: %w", err)
	}
	defer stopTransport()

	reload := func() {
		if err := a.Supervisor.Reload(); err != nil {
			log.Printf("taskmasterd: reload failed: %v", err)
		}
	}

	if watch {
		watcher, err := viperprovider.Watch(a.Config.SourcePath, nil, reload)
		if err != nil {
			cancel()
			return fmt.Errorf("taskmaster: starting config watch: %w", err)
		}
		defer func() { _ = watcher.Close() }()
	}

	daemonctl.HandleSignals(daemonctl.ShutdownHooks{
		Reload: reload,
		Shutdown: func() {
			cancel()
			for _, err := range a.Supervisor.ShutdownAll() {
				log.Printf("taskmasterd: shutdown error: %v", err)
			}
		},
	})

	return nil
}

func (a *App) startTransport(d *dispatch.Dispatcher) (stop func(), err error) {
	addr := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)

	switch a.Config.Server.Type {
	case config.TransportHTTP:
		srv := infrahttp.New(addr, d)
		go func() {
			if err := srv.Serve(); err != nil {
				log.Printf("taskmasterd: http transport stopped: %v", err)
			}
		}()
		return func() { _ = srv.Close() }, nil

	default:
		srv, err := socket.Listen(addr, d, nil)
		if err != nil {
			return nil, err
		}
		go func() {
			if err := srv.Serve(); err != nil {
				log.Printf("taskmasterd: socket transport stopped: %v", err)
			}
		}()
		return func() { _ = srv.Close() }, nil
	}
}
