package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/discoverygo/internal/ctxlog"
)

// Run performs one discovery pass and prints the resulting service table.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	services, err := a.registry.Services(ctx)
	if err != nil {
		return fmt.Errorf("service discovery failed: %w", err)
	}

	if len(services) == 0 {
		a.logger.Warn("No services discovered.")
		return nil
	}

	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(a.outW, "%s = %T\n", name, services[name])
	}
	a.logger.Info("Discovery complete.", "services", len(services))

	a.logger.Debug("App.Run method finished.")
	return nil
}
