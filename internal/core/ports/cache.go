package ports

import "go.trai.ch/mvninspect/internal/core/domain"

// ResolutionCache persists resolution results between runs.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ResolutionCache interface {
	// Get returns the cached artifacts for req.
	// Returns nil, nil if not found.
	Get(req domain.ResolutionRequest) ([]domain.ResolvedDependency, error)

	// Put stores the artifacts resolved for req.
	Put(req domain.ResolutionRequest, deps []domain.ResolvedDependency) error
}
