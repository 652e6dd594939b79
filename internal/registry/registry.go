package registry

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/vk/discoverygo/internal/construct"
	"github.com/vk/discoverygo/internal/ctxlog"
	"github.com/vk/discoverygo/internal/loader"
	"github.com/vk/discoverygo/internal/manifest"
)

// ChildAcceptor must be implemented by any primary service that has child
// declarations in a manifest. The registry hands over each child exactly
// once, in declaration order, during reconciliation.
type ChildAcceptor interface {
	AcceptChild(child any)
}

// Registry is the authoritative service-name to instance mapping. All
// public methods serialize on one mutex held for the full call, so at most
// one goroutine runs discovery or mutates state at a time.
type Registry struct {
	mu        sync.Mutex
	cached    map[string]any   // manual adds, then the frozen result
	staged    map[string]any   // primaries collected during discovery
	pending   map[string][]any // parent name -> children awaiting attachment
	sealed    bool
	discovery bool

	resolver *loader.Resolver
	catalog  *construct.Catalog
}

// Option configures a Registry.
type Option func(*Registry)

// WithResolver replaces the default manifest resolver.
func WithResolver(r *loader.Resolver) Option {
	return func(reg *Registry) { reg.resolver = r }
}

// WithCatalog replaces the default (empty) constructor catalog.
func WithCatalog(c *construct.Catalog) Option {
	return func(reg *Registry) { reg.catalog = c }
}

// WithDiscovery sets the initial discovery-enabled flag.
func WithDiscovery(enabled bool) Option {
	return func(reg *Registry) { reg.discovery = enabled }
}

// New creates an unsealed registry. Without options it probes the default
// sources with an empty catalog, so discovery resolves manifests but can
// only instantiate types the host registered afterwards via Catalog.
func New(opts ...Option) *Registry {
	r := &Registry{
		cached:    make(map[string]any),
		staged:    make(map[string]any),
		pending:   make(map[string][]any),
		discovery: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = loader.NewResolver(loader.DefaultSources()...)
	}
	if r.catalog == nil {
		r.catalog = construct.NewCatalog()
	}
	return r
}

var (
	instance *Registry
	once     sync.Once
)

// Instance returns the process-wide registry, created with defaults on
// first access.
func Instance() *Registry {
	once.Do(func() { instance = New() })
	return instance
}

// Catalog exposes the constructor catalog so hosts can register service
// constructors before the first Services call.
func (r *Registry) Catalog() *construct.Catalog { return r.catalog }

// DiscoveryEnabled reports whether Services performs manifest discovery.
func (r *Registry) DiscoveryEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.discovery
}

// SetDiscoveryEnabled toggles manifest discovery. It has no effect on an
// already sealed registry until Reset.
func (r *Registry) SetDiscoveryEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discovery = enabled
}

// AddService registers an already-constructed instance under name. It
// fails once the registry is sealed.
func (r *Registry) AddService(name string, svc any) error {
	if svc == nil {
		return fmt.Errorf("registry: service %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return &SealedError{Name: name}
	}
	r.cached[name] = svc
	return nil
}

// AddServiceFor registers svc under the name of its static type T, so an
// implementation can be registered under the interface it satisfies.
func AddServiceFor[T any](r *Registry, svc T) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return r.AddService(t.String(), any(svc))
}

// Reset clears all services and un-seals the registry. The discovery flag
// is left as-is. Intended for test isolation.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = make(map[string]any)
	r.staged = make(map[string]any)
	r.pending = make(map[string][]any)
	r.sealed = false
}

// Services returns the finalized name-to-instance mapping. The first call
// on an unsealed registry runs discovery (when enabled), reconciles
// parent/child declarations and seals the result; later calls return the
// same mapping without re-running discovery. On a discovery error the
// registry stays unsealed so the caller may retry after fixing the
// environment. Callers must treat the returned map as read-only.
func (r *Registry) Services(ctx context.Context) (map[string]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return r.cached, nil
	}

	if r.discovery {
		if err := r.discover(ctx); err != nil {
			// Discard partial staging so a retry starts clean.
			r.staged = make(map[string]any)
			r.pending = make(map[string][]any)
			return nil, err
		}
	}

	r.sealed = true
	ctxlog.FromContext(ctx).Debug("Registry sealed.", "services", len(r.cached))
	return r.cached, nil
}

// discover runs one full discovery pass: resolve manifests, process each
// resource, then reconcile children into parents. Caller holds the lock.
func (r *Registry) discover(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	match, found := r.resolver.Find(ctx, loader.ManifestPath)
	if found {
		logger.Debug("Discovered manifest source.", "source", match.Source.Name(), "resources", len(match.Resources))
		proc := &manifest.Processor{Catalog: r.catalog}
		for _, res := range match.Resources {
			if err := proc.Process(ctx, res, stagingSink{r}); err != nil {
				return err
			}
		}
	} else {
		logger.Debug("No manifest resources found in any source.")
	}

	return r.reconcile()
}

// reconcile attaches pending children to their staged parents and merges
// the staged primaries into the final mapping. Any pending entry without a
// matching primary is a fatal integrity violation.
func (r *Registry) reconcile() error {
	for name, svc := range r.staged {
		children, ok := r.pending[name]
		if !ok {
			continue
		}
		acceptor, ok := svc.(ChildAcceptor)
		if !ok {
			return &NotAcceptorError{Name: name, Type: fmt.Sprintf("%T", svc)}
		}
		for _, child := range children {
			acceptor.AcceptChild(child)
		}
		delete(r.pending, name)
	}

	if len(r.pending) > 0 {
		names := make([]string, 0, len(r.pending))
		for name := range r.pending {
			names = append(names, name)
		}
		sort.Strings(names)
		return &OrphanedChildError{Names: names}
	}

	for name, svc := range r.staged {
		r.cached[name] = svc
	}
	r.staged = make(map[string]any)
	return nil
}

// stagingSink routes processor output into the registry's staging maps.
// The registry lock is already held while the processor runs.
type stagingSink struct {
	r *Registry
}

func (s stagingSink) StagePrimary(name string, instance any) {
	s.r.staged[name] = instance
}

func (s stagingSink) StageChild(name string, instance any) {
	s.r.pending[name] = append(s.r.pending[name], instance)
}

// IsSealed reports whether the registry has been sealed. Mostly useful in
// tests and host diagnostics.
func (r *Registry) IsSealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed
}
