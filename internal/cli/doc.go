// Package cli parses the command line of the discoverygo binary into an
// application configuration.
package cli
