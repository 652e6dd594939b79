package manifest

import (
	"bufio"
	"context"
	"fmt"

	"github.com/vk/discoverygo/internal/construct"
	"github.com/vk/discoverygo/internal/ctxlog"
	"github.com/vk/discoverygo/internal/loader"
)

// ReadError reports an I/O failure while opening or reading a manifest
// resource. It is fatal for the discovery pass that encountered it.
type ReadError struct {
	Location string
	Err      error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading manifest %s: %v", e.Location, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Sink receives the instances produced while processing a resource.
// Primary instances become services; child instances are parked until
// reconciliation attaches them to their parent.
type Sink interface {
	StagePrimary(name string, instance any)
	StageChild(name string, instance any)
}

// Processor turns manifest resources into live instances using a
// constructor catalog.
type Processor struct {
	Catalog *construct.Catalog
}

// Process reads one resource line by line and routes every directive value
// through the catalog into the sink. An instantiation failure under an
// optional key is logged and skipped; under a required key it aborts the
// resource. The resource is fully consumed and released before Process
// returns, on every path.
func (p *Processor) Process(ctx context.Context, res loader.Resource, sink Sink) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Processing manifest resource.", "location", res.Location())

	rc, err := res.Open()
	if err != nil {
		return &ReadError{Location: res.Location(), Err: err}
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		directive, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if err := p.apply(ctx, directive, sink); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return &ReadError{Location: res.Location(), Err: err}
	}
	return nil
}

func (p *Processor) apply(ctx context.Context, d Directive, sink Sink) error {
	logger := ctxlog.FromContext(ctx)
	for _, v := range d.Values {
		instance, err := p.Catalog.New(ctx, v.Type)
		if err != nil {
			if d.Optional {
				logger.Info("Cannot load optional service.", "service", d.Name, "type", v.Type, "error", err)
				continue
			}
			return fmt.Errorf("service %q: %w", d.Name, err)
		}
		if v.Child {
			sink.StageChild(d.Name, instance)
		} else {
			sink.StagePrimary(d.Name, instance)
		}
		logger.Debug("Adding service.", "service", d.Name, "type", v.Type, "child", v.Child)
	}
	return nil
}
