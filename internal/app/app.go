package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/discoverygo/internal/construct"
	"github.com/vk/discoverygo/internal/hclconf"
	"github.com/vk/discoverygo/internal/loader"
	"github.com/vk/discoverygo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. A
// broken host config file is a fatal startup error and panics; the
// entrypoint recovers it into a clean exit.
func NewApp(outW io.Writer, cfg *Config, modules ...construct.Module) *App {
	merged := *cfg
	if merged.ConfigPath != "" {
		hostCfg, err := hclconf.Load(merged.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		applyHostConfig(&merged, hostCfg)
	}

	logger := newLogger(merged.LogLevel, merged.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	catalog := construct.NewCatalog()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(catalog)
	}
	logger.Debug("All service modules registered.", "count", len(modules), "types", catalog.Types())

	sources := loader.DefaultSources()
	if len(merged.SearchPaths) > 0 {
		sources = loader.DirSources(merged.SearchPaths)
	}

	reg := registry.New(
		registry.WithCatalog(catalog),
		registry.WithResolver(loader.NewResolver(sources...)),
		registry.WithDiscovery(!merged.NoDiscovery),
	)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   &merged,
	}
}

// applyHostConfig fills in settings the command line left unset. Flags win
// over the config file.
func applyHostConfig(cfg *Config, host *hclconf.Config) {
	if host.Logging != nil {
		if cfg.LogLevel == "" {
			cfg.LogLevel = host.Logging.Level
		}
		if cfg.LogFormat == "" {
			cfg.LogFormat = host.Logging.Format
		}
	}
	if host.Discovery != nil {
		if len(cfg.SearchPaths) == 0 {
			cfg.SearchPaths = host.Discovery.SearchPath
		}
		if !cfg.NoDiscovery && host.Discovery.Enabled != nil {
			cfg.NoDiscovery = !*host.Discovery.Enabled
		}
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
