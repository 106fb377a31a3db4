package resolver

import (
	"context"
	"fmt"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
)

var _ ports.DependencyResolver = (*Cached)(nil)

// Cached serves resolutions from a ResolutionCache and records fresh ones.
// Cache failures are logged and never fail a resolution.
type Cached struct {
	next   ports.DependencyResolver
	cache  ports.ResolutionCache
	logger ports.Logger
}

// WithCache wraps next so results are read from and written to cache.
func WithCache(next ports.DependencyResolver, cache ports.ResolutionCache, logger ports.Logger) *Cached {
	return &Cached{next: next, cache: cache, logger: logger}
}

// Resolve implements ports.DependencyResolver.
func (c *Cached) Resolve(ctx context.Context, req domain.ResolutionRequest) ([]domain.ResolvedDependency, error) {
	hit, err := c.cache.Get(req)
	switch {
	case err != nil:
		c.logger.Warn(fmt.Sprintf("resolution cache: ignoring entry for %s: %v", req.Coordinate, err))
	case hit != nil:
		return hit, nil
	}

	deps, err := c.next.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(req, deps); err != nil {
		c.logger.Warn(fmt.Sprintf("resolution cache: failed to store %s: %v", req.Coordinate, err))
	}
	return deps, nil
}
