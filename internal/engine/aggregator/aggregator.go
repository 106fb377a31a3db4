// Package aggregator flattens discovered modules into per-module compile options.
package aggregator

import (
	"context"
	"fmt"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/zerr"
)

// Aggregator builds ModuleOptions for the leaf modules of a build.
type Aggregator struct {
	resolver ports.DependencyResolver
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates an Aggregator.
func New(resolver ports.DependencyResolver, logger ports.Logger, tracer ports.Tracer) *Aggregator {
	return &Aggregator{resolver: resolver, logger: logger, tracer: tracer}
}

// BuildOptions returns one ModuleOptions per non-aggregator project, in input
// order. Dependencies that cannot be resolved are recorded as failed outcomes
// and diagnostics. Only context cancellation aborts the run.
func (a *Aggregator) BuildOptions(
	ctx context.Context,
	projects []*domain.Project,
	session domain.RepositorySession,
) (*domain.Report, error) {
	ctx, span := a.tracer.Start(ctx, "aggregate")
	defer span.End()

	targets := domain.NewModuleTargets()
	for _, p := range projects {
		if !p.IsAggregator() {
			targets.Register(p)
		}
	}
	span.SetAttribute("mvninspect.modules", targets.Len())

	report := &domain.Report{Modules: []domain.ModuleOptions{}}
	for _, p := range projects {
		if p.IsAggregator() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		opts, err := a.module(ctx, p, targets, session, report)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		report.Modules = append(report.Modules, opts)
	}
	return report, nil
}

func (a *Aggregator) module(
	ctx context.Context,
	p *domain.Project,
	targets *domain.ModuleTargets,
	session domain.RepositorySession,
	report *domain.Report,
) (domain.ModuleOptions, error) {
	ctx, span := a.tracer.Start(ctx, "module")
	defer span.End()
	span.SetAttribute(ports.SubjectAttribute, p.ID())

	opts := domain.ModuleOptions{
		ProjectID:      p.ID(),
		Name:           p.Name,
		BaseDir:        p.BaseDir,
		Source:         sourceLevel(p),
		Encoding:       encoding(p),
		SourcePaths:    sourcePaths(p),
		TestSourcePath: p.Build.TestSourceDirectory,
		OutputPath:     p.Build.OutputDirectory,
		TestOutputPath: p.Build.TestOutputDirectory,
	}

	var set domain.DependencySet
	for _, dep := range p.Dependencies {
		if err := ctx.Err(); err != nil {
			return domain.ModuleOptions{}, err
		}

		outcome := a.resolve(ctx, p, dep, targets, session)
		if outcome.Err != nil && ctx.Err() != nil {
			return domain.ModuleOptions{}, ctx.Err()
		}
		opts.Outcomes = append(opts.Outcomes, outcome)

		if !outcome.OK() {
			report.Diagnostics = append(report.Diagnostics, domain.Diagnostic{
				Kind:    domain.DiagDependencyUnresolved,
				Module:  p.ID(),
				Subject: dep.Coordinate.String(),
				Message: outcome.Err.Error(),
			})
			a.logger.Warn(fmt.Sprintf("module %s: skipping dependency %s: %v", p.ID(), dep.Coordinate, outcome.Err))
			continue
		}
		for _, artifact := range outcome.Artifacts {
			artifact.Scope = dep.Scope
			set.Add(artifact)
		}
	}
	opts.Dependencies = set.Items()

	span.SetAttribute("mvninspect.dependencies", set.Len())
	return opts, nil
}

// resolve resolves one declared dependency of p.
func (a *Aggregator) resolve(
	ctx context.Context,
	p *domain.Project,
	dep domain.Dependency,
	targets *domain.ModuleTargets,
	session domain.RepositorySession,
) domain.ResolutionOutcome {
	ctx, span := a.tracer.Start(ctx, "resolve")
	defer span.End()
	span.SetAttribute(ports.SubjectAttribute, dep.Coordinate.String())

	outcome := domain.ResolutionOutcome{Dependency: dep}
	switch target, ok := targets.Lookup(dep.Coordinate); {
	case dep.Scope == domain.ScopeSystem:
		outcome.Artifacts, outcome.Err = systemArtifact(dep)
	case ok && target.Project != p:
		outcome.Reactor = true
		r := reactor{Aggregator: a, targets: targets, session: session, seen: map[domain.Coordinate]bool{p.Coordinate: true}}
		outcome.Artifacts, outcome.Err = r.collect(ctx, dep, target)
	default:
		outcome.Artifacts, outcome.Err = a.resolver.Resolve(ctx, request(dep, session))
	}

	if outcome.Err != nil {
		span.RecordError(outcome.Err)
		outcome.Artifacts = nil
	}
	return outcome
}

func request(dep domain.Dependency, session domain.RepositorySession) domain.ResolutionRequest {
	return domain.ResolutionRequest{
		Coordinate: dep.Coordinate.String(),
		Type:       dep.Type,
		Classifier: dep.Classifier,
		Scope:      dep.Scope,
		Exclusions: dep.Exclusions,
		Session:    session,
	}
}

func systemArtifact(dep domain.Dependency) ([]domain.ResolvedDependency, error) {
	if dep.SystemPath == "" {
		return nil, zerr.With(domain.ErrDependencyResolution, "dependency", dep.Coordinate.String())
	}
	return []domain.ResolvedDependency{{Coordinate: dep.Coordinate, Scope: domain.ScopeSystem, Path: dep.SystemPath}}, nil
}
