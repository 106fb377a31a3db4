package ports

import (
	"context"

	"go.trai.ch/mvninspect/internal/core/domain"
)

// DependencyResolver collects the transitive artifact set of a dependency.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve returns the requested artifact followed by its transitive
	// dependencies, each with a local file path. Any failure fails the whole request.
	Resolve(ctx context.Context, req domain.ResolutionRequest) ([]domain.ResolvedDependency, error)
}
