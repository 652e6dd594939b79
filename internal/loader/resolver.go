package loader

import (
	"context"

	"github.com/vk/discoverygo/internal/ctxlog"
)

// Match pairs the winning source with its full set of matching resources.
type Match struct {
	Source    Source
	Resources []Resource
}

// Resolver probes an ordered list of candidate sources for a relative path.
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver over the given sources, probed in order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Find returns the first source that yields at least one resource under
// rel, together with all of that source's matching resources. Sources that
// error or yield nothing are skipped. The boolean is false when no source
// matched; that is a valid outcome, not an error.
func (r *Resolver) Find(ctx context.Context, rel string) (Match, bool) {
	logger := ctxlog.FromContext(ctx)
	for _, src := range r.sources {
		resources, err := src.Resources(rel)
		if err != nil {
			logger.Debug("Skipping unreadable source.", "source", src.Name(), "error", err)
			continue
		}
		if len(resources) == 0 {
			logger.Debug("No manifest resources in source.", "source", src.Name(), "path", rel)
			continue
		}
		logger.Debug("Resolved manifest resources.", "source", src.Name(), "path", rel, "count", len(resources))
		return Match{Source: src, Resources: resources}, true
	}
	return Match{}, false
}
