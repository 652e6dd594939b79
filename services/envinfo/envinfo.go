// Package envinfo provides a discoverable snapshot of the process
// environment.
package envinfo

import (
	"context"
	"os"
	"strings"

	"github.com/vk/discoverygo/internal/construct"
)

// Module implements the construct.Module interface for this package.
type Module struct{}

// Register registers the package's constructors with the catalog.
func (m *Module) Register(c *construct.Catalog) {
	c.MustRegister("envinfo.Snapshot", func(ctx context.Context) (any, error) {
		return NewSnapshot(), nil
	})
}

// Snapshot captures the environment variables at construction time.
type Snapshot struct {
	vars map[string]string
}

// NewSnapshot reads the current process environment.
func NewSnapshot() *Snapshot {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return &Snapshot{vars: vars}
}

// Lookup returns the captured value for key.
func (s *Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.vars[key]
	return v, ok
}

// Len reports how many variables were captured.
func (s *Snapshot) Len() int { return len(s.vars) }
