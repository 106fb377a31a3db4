package aggregator_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/mvninspect/internal/core/ports/mocks"
	"go.trai.ch/mvninspect/internal/engine/aggregator"
	"go.uber.org/mock/gomock"
)

var session = domain.RepositorySession{LocalRepository: "/repo", Mirror: domain.DefaultMirror()}

type aggregatorMocks struct {
	resolver *mocks.MockDependencyResolver
	logger   *mocks.MockLogger
}

func setupAggregatorTest(t *testing.T) (*aggregator.Aggregator, aggregatorMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := aggregatorMocks{
		resolver: mocks.NewMockDependencyResolver(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	return aggregator.New(m.resolver, m.logger, tracer), m
}

func coord(g, a, v string) domain.Coordinate {
	return domain.Coordinate{GroupID: g, ArtifactID: a, Version: v}
}

func leaf(artifactID string, deps ...domain.Dependency) *domain.Project {
	base := filepath.Join("/work", artifactID)
	return &domain.Project{
		Coordinate:   coord("g", artifactID, "1.0"),
		Packaging:    "jar",
		BaseDir:      base,
		Dependencies: deps,
		Build: domain.Build{
			Directory:           filepath.Join(base, "target"),
			SourceDirectory:     filepath.Join(base, "src", "main", "java"),
			TestSourceDirectory: filepath.Join(base, "src", "test", "java"),
			OutputDirectory:     filepath.Join(base, "target", "classes"),
			TestOutputDirectory: filepath.Join(base, "target", "test-classes"),
		},
	}
}

func aggregatorProject(artifactID string) *domain.Project {
	return &domain.Project{Coordinate: coord("g", artifactID, "1.0"), Packaging: domain.PackagingAggregator}
}

func dep(c domain.Coordinate, scope domain.Scope) domain.Dependency {
	return domain.Dependency{Coordinate: c, Type: "jar", Scope: scope}
}

func resolved(c domain.Coordinate, scope domain.Scope) domain.ResolvedDependency {
	return domain.ResolvedDependency{
		Coordinate: c,
		Scope:      scope,
		Path:       "/repo/" + domain.NewArtifact(c, "", "").RepositoryPath(),
	}
}

func TestAggregator_BuildOptions_Scenario(t *testing.T) {
	agg, m := setupAggregatorTest(t)
	x, y := coord("g", "x", "1.0"), coord("g", "y", "2.0")

	m.resolver.EXPECT().Resolve(gomock.Any(), domain.ResolutionRequest{
		Coordinate: "g:x:1.0",
		Type:       "jar",
		Scope:      domain.ScopeCompile,
		Session:    session,
	}).Return([]domain.ResolvedDependency{resolved(x, domain.ScopeCompile), resolved(y, domain.ScopeCompile)}, nil)

	a := leaf("a", dep(x, domain.ScopeCompile))
	report, err := agg.BuildOptions(context.Background(), []*domain.Project{aggregatorProject("root"), a}, session)
	require.NoError(t, err)

	require.Len(t, report.Modules, 1)
	got := report.Modules[0]
	assert.Equal(t, "g:a:1.0", got.ProjectID)
	assert.Equal(t, []string{a.Build.SourceDirectory}, got.SourcePaths)
	assert.Equal(t, a.Build.TestSourceDirectory, got.TestSourcePath)
	assert.Equal(t, a.Build.OutputDirectory, got.OutputPath)
	assert.Equal(t, a.Build.TestOutputDirectory, got.TestOutputPath)
	assert.Equal(t, aggregator.DefaultSourceLevel, got.Source)
	assert.Equal(t, aggregator.DefaultEncoding, got.Encoding)

	want := []domain.ResolvedDependency{resolved(x, domain.ScopeCompile), resolved(y, domain.ScopeCompile)}
	if diff := cmp.Diff(want, got.Dependencies); diff != "" {
		t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, report.Diagnostics)
}

func TestAggregator_BuildOptions_OnlyLeavesInOrder(t *testing.T) {
	agg, _ := setupAggregatorTest(t)
	projects := []*domain.Project{
		aggregatorProject("root"),
		leaf("core"),
		aggregatorProject("services"),
		leaf("billing"),
		leaf("app"),
	}

	report, err := agg.BuildOptions(context.Background(), projects, session)
	require.NoError(t, err)

	var ids []string
	for _, mo := range report.Modules {
		ids = append(ids, mo.ProjectID)
		assert.NotNil(t, mo.Dependencies)
	}
	assert.Equal(t, []string{"g:core:1.0", "g:billing:1.0", "g:app:1.0"}, ids)
}

func TestAggregator_BuildOptions_DeduplicatesByCoordinate(t *testing.T) {
	agg, m := setupAggregatorTest(t)
	x := coord("g", "x", "1.0")

	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.ResolutionRequest) ([]domain.ResolvedDependency, error) {
			return []domain.ResolvedDependency{resolved(x, req.Scope)}, nil
		}).Times(2)

	report, err := agg.BuildOptions(context.Background(),
		[]*domain.Project{leaf("a", dep(x, domain.ScopeTest), dep(x, domain.ScopeCompile))}, session)
	require.NoError(t, err)

	deps := report.Modules[0].Dependencies
	require.Len(t, deps, 1)
	assert.Equal(t, domain.ScopeTest, deps[0].Scope, "first declared dependency wins")
	assert.Len(t, report.Modules[0].Outcomes, 2)
}

func TestAggregator_BuildOptions_FlattenedArtifactsCarryDeclaredScope(t *testing.T) {
	agg, m := setupAggregatorTest(t)
	x, y := coord("g", "x", "1.0"), coord("g", "y", "1.0")

	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(
		[]domain.ResolvedDependency{resolved(x, domain.ScopeProvided), resolved(y, domain.ScopeProvided)}, nil)

	report, err := agg.BuildOptions(context.Background(), []*domain.Project{leaf("a", dep(x, domain.ScopeProvided))}, session)
	require.NoError(t, err)
	for _, d := range report.Modules[0].Dependencies {
		assert.Equal(t, domain.ScopeProvided, d.Scope)
	}
}

func TestAggregator_BuildOptions_ResolutionFailureIsRecoverable(t *testing.T) {
	agg, m := setupAggregatorTest(t)
	x, z := coord("g", "x", "1.0"), coord("g", "z", "1.0")

	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.ResolutionRequest) ([]domain.ResolvedDependency, error) {
			if req.Coordinate == "g:x:1.0" {
				return nil, domain.ErrArtifactNotFound
			}
			return []domain.ResolvedDependency{resolved(z, req.Scope)}, nil
		}).Times(2)

	var warnings []string
	m.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) { warnings = append(warnings, msg) })

	report, err := agg.BuildOptions(context.Background(),
		[]*domain.Project{leaf("a", dep(x, domain.ScopeCompile), dep(z, domain.ScopeCompile))}, session)
	require.NoError(t, err)

	require.Len(t, report.Modules, 1)
	mo := report.Modules[0]
	assert.Equal(t, []domain.ResolvedDependency{resolved(z, domain.ScopeCompile)}, mo.Dependencies)

	failed := mo.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, x, failed[0].Dependency.Coordinate)
	assert.Nil(t, failed[0].Artifacts)

	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, domain.Diagnostic{
		Kind:    domain.DiagDependencyUnresolved,
		Module:  "g:a:1.0",
		Subject: "g:x:1.0",
		Message: domain.ErrArtifactNotFound.Error(),
	}, report.Diagnostics[0])

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "g:a:1.0")
	assert.Contains(t, warnings[0], "g:x:1.0")
}

func TestAggregator_BuildOptions_ReactorDependencies(t *testing.T) {
	agg, m := setupAggregatorTest(t)
	x, junit, noisy := coord("g", "x", "1.0"), coord("junit", "junit", "4.13"), coord("g", "noisy", "1.0")

	optional := dep(coord("g", "opt", "1.0"), domain.ScopeCompile)
	optional.Optional = true
	model := leaf("model", dep(noisy, domain.ScopeCompile))
	core := leaf("core",
		dep(x, domain.ScopeCompile),
		dep(junit, domain.ScopeTest),
		optional,
		dep(model.Coordinate, domain.ScopeRuntime),
	)
	onCore := dep(core.Coordinate, domain.ScopeCompile)
	onCore.Exclusions = []domain.Exclusion{{GroupID: "g", ArtifactID: "noisy"}}
	app := leaf("app", onCore)

	// Only the external dependency of core reaches the resolver, once for core
	// itself and once while folding core into app.
	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.ResolutionRequest) ([]domain.ResolvedDependency, error) {
			switch req.Coordinate {
			case "g:x:1.0", "junit:junit:4.13", "g:opt:1.0", "g:noisy:1.0":
				a, err := domain.ParseArtifact(req.Coordinate)
				require.NoError(t, err)
				return []domain.ResolvedDependency{resolved(a.Coordinate, req.Scope)}, nil
			}
			t.Fatalf("unexpected resolution of %s", req.Coordinate)
			return nil, nil
		}).AnyTimes()

	report, err := agg.BuildOptions(context.Background(), []*domain.Project{model, core, app}, session)
	require.NoError(t, err)
	require.Len(t, report.Modules, 3)

	appOpts := report.Modules[2]
	want := []domain.ResolvedDependency{
		{Coordinate: core.Coordinate, Scope: domain.ScopeCompile, Path: core.Build.OutputDirectory},
		resolved(x, domain.ScopeCompile),
		{Coordinate: model.Coordinate, Scope: domain.ScopeCompile, Path: model.Build.OutputDirectory},
	}
	if diff := cmp.Diff(want, appOpts.Dependencies); diff != "" {
		t.Errorf("reactor dependencies mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, appOpts.Outcomes, 1)
	assert.True(t, appOpts.Outcomes[0].Reactor)
	assert.Empty(t, report.Diagnostics)
}

func TestAggregator_BuildOptions_ReactorTestJar(t *testing.T) {
	agg, _ := setupAggregatorTest(t)
	core := leaf("core")
	testJar := dep(core.Coordinate, domain.ScopeTest)
	testJar.Type = domain.TypeTestJar
	app := leaf("app", testJar)
	classified := dep(core.Coordinate, domain.ScopeTest)
	classified.Classifier = domain.ClassifierTests
	web := leaf("web", classified)

	report, err := agg.BuildOptions(context.Background(), []*domain.Project{core, app, web}, session)
	require.NoError(t, err)
	require.Len(t, report.Modules, 3)

	want := []domain.ResolvedDependency{
		{Coordinate: core.Coordinate, Scope: domain.ScopeTest, Path: core.Build.TestOutputDirectory},
	}
	assert.Equal(t, want, report.Modules[1].Dependencies)
	assert.Equal(t, want, report.Modules[2].Dependencies)
}

func TestAggregator_BuildOptions_ReactorCycleTerminates(t *testing.T) {
	agg, _ := setupAggregatorTest(t)
	a := leaf("a")
	b := leaf("b", dep(a.Coordinate, domain.ScopeCompile))
	a.Dependencies = []domain.Dependency{dep(b.Coordinate, domain.ScopeCompile)}

	report, err := agg.BuildOptions(context.Background(), []*domain.Project{a, b}, session)
	require.NoError(t, err)
	require.Len(t, report.Modules, 2)
	assert.Len(t, report.Modules[0].Dependencies, 1)
	assert.Equal(t, b.Build.OutputDirectory, report.Modules[0].Dependencies[0].Path)
}

func TestAggregator_BuildOptions_SystemScope(t *testing.T) {
	agg, m := setupAggregatorTest(t)
	tools := dep(coord("com.sun", "tools", "1.8"), domain.ScopeSystem)
	tools.SystemPath = "/jdk/lib/tools.jar"
	broken := dep(coord("com.sun", "broken", "1.0"), domain.ScopeSystem)

	m.logger.EXPECT().Warn(gomock.Any())

	report, err := agg.BuildOptions(context.Background(), []*domain.Project{leaf("a", tools, broken)}, session)
	require.NoError(t, err)

	assert.Equal(t, []domain.ResolvedDependency{
		{Coordinate: tools.Coordinate, Scope: domain.ScopeSystem, Path: "/jdk/lib/tools.jar"},
	}, report.Modules[0].Dependencies)
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, "com.sun:broken:1.0", report.Diagnostics[0].Subject)
}

func TestAggregator_BuildOptions_SourcePaths(t *testing.T) {
	agg, _ := setupAggregatorTest(t)
	p := leaf("gen")
	sources := func(paths ...string) *domain.ConfigNode {
		n := &domain.ConfigNode{Name: "sources"}
		for _, s := range paths {
			n.Children = append(n.Children, &domain.ConfigNode{Name: "source", Value: s})
		}
		return &domain.ConfigNode{Name: "configuration", Children: []*domain.ConfigNode{n}}
	}
	p.Build.Plugins = []domain.Plugin{{
		GroupID:       aggregator.BuildHelperGroupID,
		ArtifactID:    aggregator.BuildHelperArtifactID,
		Configuration: sources("plugin-level"),
		Executions: []domain.Execution{
			{ID: "add-generated", Goals: []string{"add-source"}, Configuration: sources("target/generated-sources/antlr", "/abs/src")},
			{ID: "add-tests", Goals: []string{"add-test-source"}, Configuration: sources("src/it/java")},
			{ID: "inherit", Goals: []string{"add-source"}},
		},
	}}

	report, err := agg.BuildOptions(context.Background(), []*domain.Project{p}, session)
	require.NoError(t, err)

	assert.Equal(t, []string{
		p.Build.SourceDirectory,
		filepath.Join(p.BaseDir, "target", "generated-sources", "antlr"),
		filepath.FromSlash("/abs/src"),
		filepath.Join(p.BaseDir, "plugin-level"),
	}, report.Modules[0].SourcePaths)
}

func TestAggregator_BuildOptions_SourceLevelAndEncoding(t *testing.T) {
	agg, _ := setupAggregatorTest(t)
	compiler := func(children ...*domain.ConfigNode) []domain.Plugin {
		return []domain.Plugin{{
			GroupID:       domain.DefaultPluginGroupID,
			ArtifactID:    "maven-compiler-plugin",
			Configuration: &domain.ConfigNode{Name: "configuration", Children: children},
		}}
	}

	byRelease := leaf("release")
	byRelease.Properties = map[string]string{"maven.compiler.release": "17", "maven.compiler.source": "11"}

	bySource := leaf("source")
	bySource.Properties = map[string]string{"maven.compiler.source": "11", "project.build.sourceEncoding": "ISO-8859-1"}

	byPlugin := leaf("plugin")
	byPlugin.Build.Plugins = compiler(
		&domain.ConfigNode{Name: "source", Value: "21"},
		&domain.ConfigNode{Name: "encoding", Value: "UTF-16"},
	)

	report, err := agg.BuildOptions(context.Background(), []*domain.Project{byRelease, bySource, byPlugin}, session)
	require.NoError(t, err)

	got := make([][2]string, len(report.Modules))
	for i, mo := range report.Modules {
		got[i] = [2]string{mo.Source, mo.Encoding}
	}
	assert.Equal(t, [][2]string{{"17", "UTF-8"}, {"11", "ISO-8859-1"}, {"21", "UTF-16"}}, got)
}

func TestAggregator_BuildOptions_Cancelled(t *testing.T) {
	agg, m := setupAggregatorTest(t)
	ctx, cancel := context.WithCancel(context.Background())

	m.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.ResolutionRequest) ([]domain.ResolvedDependency, error) {
			cancel()
			return nil, context.Canceled
		})

	_, err := agg.BuildOptions(ctx, []*domain.Project{
		leaf("a", dep(coord("g", "x", "1.0"), domain.ScopeCompile), dep(coord("g", "y", "1.0"), domain.ScopeCompile)),
	}, session)
	assert.True(t, errors.Is(err, context.Canceled))
}
