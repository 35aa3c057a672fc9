//go:build wireinject

package bootstrap

import (
	"github.com/google/wire"

	"github.com/Mounadi05/taskmaster/internal/application/configprovider"
	"github.com/Mounadi05/taskmaster/internal/application/supervisor"
	"github.com/Mounadi05/taskmaster/internal/application/worker"
	domainprocess "github.com/Mounadi05/taskmaster/internal/domain/process"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/config/viperprovider"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/logsink"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/process"
	"github.com/Mounadi05/taskmaster/internal/infrastructure/process/credentials"
)

// InitializeApp wires every adapter to the application layer and produces
// a ready-to-run App, given the path to a configuration file. Wire
// generates the body of this function into wire_gen.go.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		viperprovider.New,
		wire.Bind(new(configprovider.Loader), new(*viperprovider.Loader)),

		process.NewUnixExecutor,
		wire.Bind(new(domainprocess.Executor), new(*process.UnixExecutor)),

		logsink.New,
		wire.Bind(new(worker.LogOpener), new(*logsink.Opener)),

		credentials.New,
		wire.Bind(new(worker.IdentityResolver), new(*credentials.Resolver)),

		ProvideSink,

		LoadConfig,
		ProvideDeps,

		supervisor.New,

		NewApp,
	)
	return nil, nil
}
