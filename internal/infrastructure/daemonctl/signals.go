package daemonctl

import (
	"os"
	"os/signal"
	"syscall"
)

// ShutdownHooks are what SIGTERM/SIGINT trigger before the process exits.
type ShutdownHooks struct {
	// Shutdown stops every worker.
	Shutdown func()
	// Reload re-reads configuration; triggered by SIGHUP.
	Reload func()
}

// HandleSignals blocks, dispatching SIGTERM/SIGINT to hooks.Shutdown and
// SIGHUP to hooks.Reload, returning once a termination signal has been
// handled.
func HandleSignals(hooks ShutdownHooks) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for sig := range sigCh {
		switch sig {
		case syscall.SIGHUP:
			if hooks.Reload != nil {
				hooks.Reload()
			}
		case syscall.SIGTERM, syscall.SIGINT:
			if hooks.Shutdown != nil {
				hooks.Shutdown()
			}
			return
		}
	}
}
