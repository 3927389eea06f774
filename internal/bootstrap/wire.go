//go:build wireinject

package bootstrap

import (
	"github.com/google/wire"

	appconfig "github.com/kodflow/hostd/internal/application/config"
	"github.com/kodflow/hostd/internal/application/host"
	"github.com/kodflow/hostd/internal/application/shutdown"
	infraconfig "github.com/kodflow/hostd/internal/infrastructure/persistence/config/yaml"
)

// InitializeApp creates the application with all dependencies wired. This
// function is the injector that Wire will generate code for.
//
// Params:
//   - configPath: the path to the YAML configuration file.
//
// Returns:
//   - *App: the fully wired application.
//   - error: any error during dependency construction.
func InitializeApp(configPath string) (*App, error) {
	wire.Build(
		// Infrastructure: configuration loader.
		infraconfig.New,
		wire.Bind(new(appconfig.Loader), new(*infraconfig.Loader)),

		// Providers: custom provider functions.
		LoadConfig,
		ProvideDaemonLogger,
		ProvidePluginLoader,
		ProvideSystemCollector,
		ProvideMetricsRegistry,

		// Application: host orchestrator and shutdown coordinator.
		host.New,
		shutdown.New,

		// Bootstrap: final App struct.
		NewApp,
	)
	return nil, nil
}
