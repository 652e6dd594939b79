// Package app wires the discovery CLI together: logger, host
// configuration, the bundled service modules, and the registry itself.
package app
