package construct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Constructor builds a new service instance. Implementations must not
// require any arguments beyond the context; configuration happens after
// construction, on the returned instance.
type Constructor func(ctx context.Context) (any, error)

// Module is the interface service packages implement to make their
// constructors discoverable. It mirrors how feature modules register
// themselves with the application at startup.
type Module interface {
	Register(c *Catalog)
}

var (
	// ErrDuplicate indicates an attempt to register a type identifier twice.
	ErrDuplicate = errors.New("construct: duplicate type registration")
	// ErrUnknownType indicates an instantiation request for an unregistered identifier.
	ErrUnknownType = errors.New("construct: unknown type")
)

// InstantiationError reports a failed construction of a manifest type.
type InstantiationError struct {
	Type string
	Err  error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot create instance of type %q: %v", e.Type, e.Err)
}

func (e *InstantiationError) Unwrap() error { return e.Err }

// Catalog maps manifest type identifiers to constructors. It is safe for
// concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{ctors: make(map[string]Constructor)}
}

// Register adds a constructor under the given type identifier. Registering
// an identifier twice is a programming error and returns ErrDuplicate.
func (c *Catalog) Register(name string, fn Constructor) error {
	if name == "" || fn == nil {
		return errors.New("construct: invalid type name or constructor")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.ctors[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	slog.Debug("Registering service constructor.", "type", name)
	c.ctors[name] = fn
	return nil
}

// MustRegister panics on registration error. Intended for module Register
// methods, where a duplicate identifier is a wiring bug.
func (c *Catalog) MustRegister(name string, fn Constructor) {
	if err := c.Register(name, fn); err != nil {
		panic(err)
	}
}

// New instantiates the type registered under name. A missing identifier or
// a failing constructor is reported as an *InstantiationError.
func (c *Catalog) New(ctx context.Context, name string) (any, error) {
	c.mu.RLock()
	fn, ok := c.ctors[name]
	c.mu.RUnlock()
	if !ok {
		return nil, &InstantiationError{Type: name, Err: ErrUnknownType}
	}
	instance, err := fn(ctx)
	if err != nil {
		return nil, &InstantiationError{Type: name, Err: err}
	}
	if instance == nil {
		return nil, &InstantiationError{Type: name, Err: errors.New("constructor returned nil")}
	}
	return instance, nil
}

// Types returns all registered identifiers in lexicographic order.
func (c *Catalog) Types() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.ctors))
	for name := range c.ctors {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Strings(names)
	return names
}
