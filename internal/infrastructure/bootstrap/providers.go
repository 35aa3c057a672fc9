package bootstrap

import (
	"fmt"
	"log"

	"github.com/Mounadi05/taskmaster/internal/application/configprovider"
	"github.com/Mounadi05/taskmaster/internal/application/notify"
	"github.com/Mounadi05/taskmaster/internal/application/supervisor"
	"github.com/Mounadi05/taskmaster/internal/application/worker"
	"github.com/Mounadi05/taskmaster/internal/domain/config"
	domainprocess "github.com/Mounadi05/taskmaster/internal/domain/process"
)

// LoadConfig loads and validates the initial configuration snapshot,
// failing fast on a bad file rather than starting with an empty table.
func LoadConfig(loader configprovider.Loader, configPath string) (*config.Config, error) {
	cfg, err := loader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("taskmaster: loading %s: %w", configPath, err)
	}
	return cfg, nil
}

// ProvideSink builds the default notification sink: a log-backed sink,
// since real delivery (SMTP formatting) is an external collaborator the
// core never dials directly.
func ProvideSink() *notify.LogSink {
	return notify.NewLogSink(log.New(log.Writer(), "", log.LstdFlags))
}

// ProvideDeps bundles the adapters a Worker needs into supervisor.Deps.
func ProvideDeps(executor domainprocess.Executor, logs worker.LogOpener, identity worker.IdentityResolver, sink *notify.LogSink) supervisor.Deps {
	return supervisor.Deps{
		Executor: executor,
		Logs:     logs,
		Identity: identity,
		Sink:     sink,
	}
}
