package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
// Empty log fields mean "use the default"; the HCL host config may fill
// them in before the defaults apply.
type Config struct {
	ConfigPath  string   // optional HCL host config file
	SearchPaths []string // explicit manifest search roots; empty = default sources

	LogFormat   string
	LogLevel    string
	NoDiscovery bool
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return &cfg, nil
}
