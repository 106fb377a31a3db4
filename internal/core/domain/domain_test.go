package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mvninspect/internal/core/domain"
)

func TestParseArtifact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.Artifact
	}{
		{
			name: "gav",
			in:   "org.acme:lib:1.0",
			want: domain.Artifact{
				Coordinate: domain.Coordinate{GroupID: "org.acme", ArtifactID: "lib", Version: "1.0"},
				Extension:  "jar",
			},
		},
		{
			name: "with extension",
			in:   "org.acme:bom:pom:2.0",
			want: domain.Artifact{
				Coordinate: domain.Coordinate{GroupID: "org.acme", ArtifactID: "bom", Version: "2.0"},
				Extension:  "pom",
			},
		},
		{
			name: "with classifier",
			in:   "org.acme:lib:jar:tests:1.0",
			want: domain.Artifact{
				Coordinate: domain.Coordinate{GroupID: "org.acme", ArtifactID: "lib", Version: "1.0"},
				Extension:  "jar",
				Classifier: "tests",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseArtifact(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArtifact_Invalid(t *testing.T) {
	for _, in := range []string{"", "a:b", "a::1.0", "a:b:c:d:e:f"} {
		_, err := domain.ParseArtifact(in)
		require.Error(t, err, in)
		assert.ErrorContains(t, err, domain.ErrInvalidCoordinate.Error(), in)
	}
}

func TestArtifact_RepositoryPath(t *testing.T) {
	c := domain.Coordinate{GroupID: "org.acme.util", ArtifactID: "lib", Version: "1.0"}

	assert.Equal(t, "org/acme/util/lib/1.0/lib-1.0.jar", domain.NewArtifact(c, "", "").RepositoryPath())
	assert.Equal(t, "org/acme/util/lib/1.0/lib-1.0.pom", domain.NewArtifact(c, "", "").POM().RepositoryPath())
	assert.Equal(t, "org/acme/util/lib/1.0/lib-1.0-tests.jar", domain.NewArtifact(c, "test-jar", "").RepositoryPath())
	assert.Equal(t, "org/acme/util/lib/1.0/lib-1.0.war", domain.NewArtifact(c, "war", "").RepositoryPath())
	assert.Equal(t, "org/acme/util/lib/1.0/lib-1.0.jar", domain.NewArtifact(c, "maven-plugin", "").RepositoryPath())
}

func TestExclusion_Matches(t *testing.T) {
	c := domain.Coordinate{GroupID: "g", ArtifactID: "a", Version: "1"}

	assert.True(t, domain.Exclusion{GroupID: "g", ArtifactID: "a"}.Matches(c))
	assert.True(t, domain.Exclusion{GroupID: "*", ArtifactID: "a"}.Matches(c))
	assert.True(t, domain.Exclusion{GroupID: "g", ArtifactID: "*"}.Matches(c))
	assert.False(t, domain.Exclusion{GroupID: "g", ArtifactID: "b"}.Matches(c))
}

func TestDependencySet_FirstInsertionWins(t *testing.T) {
	c := domain.Coordinate{GroupID: "g", ArtifactID: "x", Version: "1.0"}

	var set domain.DependencySet
	assert.True(t, set.Add(domain.ResolvedDependency{Coordinate: c, Scope: domain.ScopeCompile, Path: "/a.jar"}))
	assert.False(t, set.Add(domain.ResolvedDependency{Coordinate: c, Scope: domain.ScopeTest, Path: "/b.jar"}))
	assert.True(t, set.Add(domain.ResolvedDependency{
		Coordinate: domain.Coordinate{GroupID: "g", ArtifactID: "y", Version: "2.0"},
		Scope:      domain.ScopeCompile,
	}))

	require.Equal(t, 2, set.Len())
	got, ok := set.Get(c)
	require.True(t, ok)
	assert.Equal(t, domain.ScopeCompile, got.Scope)
	assert.Equal(t, "/a.jar", got.Path)
	assert.Equal(t, "x", set.Items()[0].ArtifactID)
	assert.Equal(t, "y", set.Items()[1].ArtifactID)
}

func TestModuleTree(t *testing.T) {
	root := &domain.Project{Coordinate: domain.Coordinate{ArtifactID: "root"}, File: "/r/pom.xml"}
	a := &domain.Project{Coordinate: domain.Coordinate{ArtifactID: "a"}, File: "/r/a/pom.xml"}
	b := &domain.Project{Coordinate: domain.Coordinate{ArtifactID: "b"}, File: "/r/b/pom.xml"}

	var tree domain.ModuleTree
	ri := tree.Add(root, domain.NoParent)
	ai := tree.Add(a, ri)
	bi := tree.Add(b, ri)

	assert.Equal(t, []*domain.Project{root, a, b}, tree.Projects())
	assert.Equal(t, []int{ai, bi}, tree.Children(ri))
	assert.Equal(t, 1, tree.Nodes[bi].Depth)
	assert.Equal(t, []string{"/r/pom.xml", "/r/a/pom.xml", "/r/b/pom.xml"}, tree.Files())

	parent, ok := tree.ParentOf(ai)
	require.True(t, ok)
	assert.Same(t, root, parent)

	_, ok = tree.ParentOf(ri)
	assert.False(t, ok)
}

func TestModuleTargets(t *testing.T) {
	p := &domain.Project{
		Coordinate: domain.Coordinate{GroupID: "g", ArtifactID: "core", Version: "1.0"},
		Build: domain.Build{
			OutputDirectory:     "/r/core/target/classes",
			TestOutputDirectory: "/r/core/target/test-classes",
		},
	}

	targets := domain.NewModuleTargets()
	targets.Register(p)

	got, ok := targets.Lookup(p.Coordinate)
	require.True(t, ok)
	assert.Equal(t, "/r/core/target/classes", got.OutputPath)
	assert.Same(t, p, got.Project)

	_, ok = targets.Lookup(domain.Coordinate{GroupID: "g", ArtifactID: "core", Version: "2.0"})
	assert.False(t, ok)
	assert.Equal(t, 1, targets.Len())
}

func TestModuleTarget_PathFor(t *testing.T) {
	target := domain.ModuleTarget{OutputPath: "/r/core/target/classes", TestOutputPath: "/r/core/target/test-classes"}
	c := domain.Coordinate{GroupID: "g", ArtifactID: "core", Version: "1.0"}

	tests := []struct {
		name       string
		typ        string
		classifier string
		want       string
	}{
		{"jar", "jar", "", "/r/core/target/classes"},
		{"default type", "", "", "/r/core/target/classes"},
		{"test-jar type", domain.TypeTestJar, "", "/r/core/target/test-classes"},
		{"tests classifier", "jar", domain.ClassifierTests, "/r/core/target/test-classes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domain.Dependency{Coordinate: c, Type: tt.typ, Classifier: tt.classifier}
			assert.Equal(t, tt.want, target.PathFor(d))
		})
	}
}
