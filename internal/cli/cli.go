package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/discoverygo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app
// config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("discoverygo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
discoverygo - Manifest-driven service discovery.

Usage:
  discoverygo [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to an optional HCL host configuration file.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the HCL host configuration file.")
	searchPathFlag := flagSet.String("search-path", "", "Comma-separated list of manifest search roots. Overrides the default sources.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	noDiscoveryFlag := flagSet.Bool("no-discovery", false, "Disable manifest discovery; only report manually added services.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	configPath := *configFlag
	if configPath == "" && flagSet.NArg() > 0 {
		configPath = flagSet.Arg(0)
	}

	var searchPaths []string
	for _, p := range strings.Split(*searchPathFlag, ",") {
		if p = strings.TrimSpace(p); p != "" {
			searchPaths = append(searchPaths, p)
		}
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath:  configPath,
		SearchPaths: searchPaths,
		LogFormat:   strings.ToLower(*logFormatFlag),
		LogLevel:    strings.ToLower(*logLevelFlag),
		NoDiscovery: *noDiscoveryFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
