package aggregator

import (
	"context"

	"go.trai.ch/mvninspect/internal/core/domain"
)

// reactor folds a dependency on another module of the same build into the
// module's output directory (its test output for test-jar dependencies) plus
// that module's own transitive dependencies.
type reactor struct {
	*Aggregator
	targets *domain.ModuleTargets
	session domain.RepositorySession
	seen    map[domain.Coordinate]bool
}

func (r *reactor) collect(
	ctx context.Context,
	dep domain.Dependency,
	target domain.ModuleTarget,
) ([]domain.ResolvedDependency, error) {
	r.seen[target.Project.Coordinate] = true
	out := []domain.ResolvedDependency{{
		Coordinate: target.Project.Coordinate,
		Scope:      dep.Scope,
		Path:       target.PathFor(dep),
	}}

	for _, child := range target.Project.Dependencies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !folded(child) || dep.Excludes(child.Coordinate) || r.seen[child.Coordinate] {
			continue
		}
		// Exclusions of the declaring edge apply to the whole subtree.
		child.Exclusions = append(child.Exclusions[:len(child.Exclusions):len(child.Exclusions)], dep.Exclusions...)

		var (
			artifacts []domain.ResolvedDependency
			err       error
		)
		if sibling, ok := r.targets.Lookup(child.Coordinate); ok {
			artifacts, err = r.collect(ctx, child, sibling)
		} else {
			artifacts, err = r.resolver.Resolve(ctx, request(child, r.session))
		}
		if err != nil {
			return nil, err
		}
		out = append(out, artifacts...)
	}
	return out, nil
}

// folded reports whether a dependency of a sibling module reaches its dependents.
func folded(d domain.Dependency) bool {
	if d.Optional {
		return false
	}
	switch d.Scope {
	case domain.ScopeCompile, domain.ScopeRuntime, "":
		return true
	default:
		return false
	}
}
