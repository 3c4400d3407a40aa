package core

import (
	"context"
	"fmt"

	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/internal/datalake"
	"github.com/huangsam/auditview/schema"
	"golang.org/x/sync/errgroup"
)

// RenderDashboard fetches and renders several domains of one company snapshot.
// At most workers domains are in flight at once and the result keeps the order
// of domains. A missing payload renders as an empty view; any other fetch or
// decode error aborts the dashboard.
func RenderDashboard(ctx context.Context, src contract.PayloadSource, d *Dispatcher, company string, layer schema.Layer, domains []schema.Domain, workers int) (schema.DashboardResult, error) {
	views := make([]schema.ViewModel, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, domain := range domains {
		g.Go(func() error {
			raw, err := datalake.Load(gctx, src, company, domain, layer)
			switch {
			case isMissing(err):
				loggerFrom(ctx).WithField("domain", domain).WithError(err).Warn("payload missing")
				raw = nil
			case err != nil:
				return fmt.Errorf("failed to load %s: %w", domain, err)
			default:
				warnFormat(ctx, string(domain), raw)
			}
			views[i] = d.Render(string(domain), raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return schema.DashboardResult{}, err
	}
	return schema.DashboardResult{Company: company, Layer: layer, Views: views}, nil
}
