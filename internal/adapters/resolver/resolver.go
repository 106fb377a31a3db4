// Package resolver collects the transitive dependencies of an artifact the
// way Maven does and makes every selected artifact available locally.
package resolver

import (
	"context"
	"strings"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyResolver = (*Resolver)(nil)

// Resolver implements ports.DependencyResolver on top of repository models.
type Resolver struct {
	models  ports.DescriptorReader
	fetcher ports.ArtifactFetcher
}

// New creates a Resolver reading POMs through models and artifacts through fetcher.
func New(models ports.DescriptorReader, fetcher ports.ArtifactFetcher) *Resolver {
	return &Resolver{models: models, fetcher: fetcher}
}

// node is one selected artifact waiting for its own dependencies to be collected.
type node struct {
	dep        domain.Dependency
	exclusions []domain.Exclusion
}

// Resolve returns the requested artifact followed by its transitive
// dependencies in breadth-first order. The nearest declaration of a
// group:artifact:type:classifier wins; ties go to the first declaration.
// Any failure fails the whole request.
func (r *Resolver) Resolve(ctx context.Context, req domain.ResolutionRequest) ([]domain.ResolvedDependency, error) {
	root, err := rootDependency(req)
	if err != nil {
		return nil, err
	}

	rootModel, err := r.models.Model(ctx, req.Session, root.Coordinate)
	if err != nil {
		return nil, wrapFailure(err, root.Coordinate)
	}
	managed := make(map[string]domain.Dependency, len(rootModel.DependencyManagement))
	for _, m := range rootModel.DependencyManagement {
		managed[m.ManagementKey()] = m
	}

	selected := []domain.Dependency{root}
	seen := map[string]struct{}{root.ManagementKey(): {}}
	queue := []node{{dep: root, exclusions: root.Exclusions}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]

		if !transitive(cur.dep.Scope) {
			continue
		}
		model := rootModel
		if cur.dep.Coordinate != root.Coordinate {
			if model, err = r.models.Model(ctx, req.Session, cur.dep.Coordinate); err != nil {
				return nil, wrapFailure(err, cur.dep.Coordinate)
			}
		}

		for _, d := range model.Dependencies {
			if d.Optional || excluded(cur.exclusions, d.Coordinate) {
				continue
			}
			if m, ok := managed[d.ManagementKey()]; ok {
				if m.Version != "" {
					d.Version = m.Version
				}
				if m.Scope != "" && d.Scope != domain.ScopeTest && d.Scope != domain.ScopeProvided {
					d.Scope = m.Scope
				}
			}
			scope, ok := mediate(cur.dep.Scope, d.Scope)
			if !ok {
				continue
			}
			if _, dup := seen[d.ManagementKey()]; dup {
				continue
			}
			if err := checkVersion(d.Coordinate); err != nil {
				return nil, wrapFailure(err, d.Coordinate)
			}

			d.Scope = scope
			seen[d.ManagementKey()] = struct{}{}
			selected = append(selected, d)
			queue = append(queue, node{
				dep:        d,
				exclusions: append(append([]domain.Exclusion(nil), cur.exclusions...), d.Exclusions...),
			})
		}
	}

	out := make([]domain.ResolvedDependency, 0, len(selected))
	for _, d := range selected {
		path, err := r.fetcher.Fetch(ctx, req.Session, d.Artifact())
		if err != nil {
			return nil, wrapFailure(err, d.Coordinate)
		}
		out = append(out, domain.ResolvedDependency{Coordinate: d.Coordinate, Scope: d.Scope, Path: path})
	}
	return out, nil
}

func rootDependency(req domain.ResolutionRequest) (domain.Dependency, error) {
	artifact, err := domain.ParseArtifact(req.Coordinate)
	if err != nil {
		return domain.Dependency{}, err
	}
	if err := checkVersion(artifact.Coordinate); err != nil {
		return domain.Dependency{}, err
	}

	root := domain.Dependency{
		Coordinate: artifact.Coordinate,
		Type:       req.Type,
		Classifier: req.Classifier,
		Scope:      req.Scope,
		Exclusions: req.Exclusions,
	}
	if root.Type == "" {
		root.Type = artifact.Extension
	}
	if root.Classifier == "" {
		root.Classifier = artifact.Classifier
	}
	if root.Scope == "" {
		root.Scope = domain.ScopeCompile
	}
	return root, nil
}

// transitive reports whether dependencies of an artifact in scope are collected.
func transitive(scope domain.Scope) bool {
	return scope != domain.ScopeSystem
}

// mediate returns the scope a dependency declared with child scope gets when
// reached through an artifact in parent scope. Provided, test and system
// dependencies are not inherited.
func mediate(parent, child domain.Scope) (domain.Scope, bool) {
	if child == "" {
		child = domain.ScopeCompile
	}
	if child != domain.ScopeCompile && child != domain.ScopeRuntime {
		return "", false
	}

	switch parent {
	case domain.ScopeCompile:
		return child, true
	case domain.ScopeRuntime:
		return domain.ScopeRuntime, true
	case domain.ScopeProvided, domain.ScopeTest:
		return parent, true
	default:
		return "", false
	}
}

func excluded(exclusions []domain.Exclusion, c domain.Coordinate) bool {
	for _, e := range exclusions {
		if e.Matches(c) {
			return true
		}
	}
	return false
}

// checkVersion rejects missing versions, version ranges and expressions
// left unresolved by interpolation.
func checkVersion(c domain.Coordinate) error {
	switch {
	case c.Version == "":
		return zerr.With(domain.ErrMissingVersion, "dependency", c.Key())
	case strings.ContainsAny(c.Version, "[](),") || strings.Contains(c.Version, "${"):
		return zerr.With(domain.ErrUnsupportedVersion, "dependency", c.String())
	default:
		return nil
	}
}

func wrapFailure(err error, c domain.Coordinate) error {
	return zerr.With(zerr.Wrap(err, domain.ErrDependencyResolution.Error()), "dependency", c.String())
}
