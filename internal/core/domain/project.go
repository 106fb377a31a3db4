package domain

// Scope is the Maven dependency scope.
type Scope string

const (
	// ScopeCompile is the default scope, available on every classpath and transitive.
	ScopeCompile Scope = "compile"
	// ScopeRuntime is needed for execution but not for compilation.
	ScopeRuntime Scope = "runtime"
	// ScopeProvided is expected from the runtime environment.
	ScopeProvided Scope = "provided"
	// ScopeTest is only available to tests.
	ScopeTest Scope = "test"
	// ScopeSystem points at an explicit file on disk.
	ScopeSystem Scope = "system"
	// ScopeImport only appears in dependency management and imports a BOM.
	ScopeImport Scope = "import"
)

// PackagingAggregator is the packaging of modules that only list submodules.
const PackagingAggregator = "pom"

// DefaultPluginGroupID is assumed for plugins declared without a groupId.
const DefaultPluginGroupID = "org.apache.maven.plugins"

// Exclusion removes a transitive dependency. Either part may be the "*" wildcard.
type Exclusion struct {
	GroupID    string
	ArtifactID string
}

// Matches reports whether the exclusion applies to c.
func (e Exclusion) Matches(c Coordinate) bool {
	return (e.GroupID == "*" || e.GroupID == c.GroupID) &&
		(e.ArtifactID == "*" || e.ArtifactID == c.ArtifactID)
}

// Dependency is a declared dependency after inheritance, management and interpolation.
type Dependency struct {
	Coordinate
	Type       string
	Classifier string
	Scope      Scope
	Optional   bool
	SystemPath string
	Exclusions []Exclusion
}

// Artifact returns the repository artifact the dependency points at.
func (d Dependency) Artifact() Artifact {
	return NewArtifact(d.Coordinate, d.Type, d.Classifier)
}

// ManagementKey identifies a dependency for dependency management and conflict resolution.
func (d Dependency) ManagementKey() string {
	typ := d.Type
	if typ == "" {
		typ = DefaultExtension
	}
	return d.GroupID + ":" + d.ArtifactID + ":" + typ + ":" + d.Classifier
}

// Excludes reports whether any exclusion of d applies to c.
func (d Dependency) Excludes(c Coordinate) bool {
	for _, e := range d.Exclusions {
		if e.Matches(c) {
			return true
		}
	}
	return false
}

// ConfigNode is a generic element of a plugin configuration tree.
type ConfigNode struct {
	Name     string
	Value    string
	Children []*ConfigNode
}

// Child returns the first direct child with the given name, or nil.
func (n *ConfigNode) Child(name string) *ConfigNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name in document order.
func (n *ConfigNode) ChildrenNamed(name string) []*ConfigNode {
	if n == nil {
		return nil
	}
	var out []*ConfigNode
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Execution is one configured execution of a build plugin.
type Execution struct {
	ID            string
	Phase         string
	Goals         []string
	Configuration *ConfigNode
}

// HasGoal reports whether the execution binds the goal.
func (e Execution) HasGoal(goal string) bool {
	for _, g := range e.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

// Plugin is a build plugin of a project.
type Plugin struct {
	GroupID       string
	ArtifactID    string
	Version       string
	Configuration *ConfigNode
	Executions    []Execution
}

// Build holds the absolute build paths and plugins of a project.
type Build struct {
	Directory           string
	SourceDirectory     string
	TestSourceDirectory string
	OutputDirectory     string
	TestOutputDirectory string
	Plugins             []Plugin
}

// Project is the effective model of one project descriptor.
// Projects are immutable once the descriptor reader returns them.
type Project struct {
	Coordinate
	Packaging            string
	Name                 string
	File                 string
	BaseDir              string
	Parent               *Coordinate
	Modules              []string
	Dependencies         []Dependency
	DependencyManagement []Dependency
	Properties           map[string]string
	Build                Build
}

// ID returns the group:artifact:version identity of the project.
func (p *Project) ID() string {
	return p.Coordinate.String()
}

// IsAggregator reports whether the project only aggregates submodules.
func (p *Project) IsAggregator() bool {
	return p.Packaging == PackagingAggregator
}

// Plugin returns the build plugin with the given identity, or nil.
func (p *Project) Plugin(groupID, artifactID string) *Plugin {
	for i := range p.Build.Plugins {
		pl := &p.Build.Plugins[i]
		g := pl.GroupID
		if g == "" {
			g = DefaultPluginGroupID
		}
		if g == groupID && pl.ArtifactID == artifactID {
			return pl
		}
	}
	return nil
}

// Property returns an effective property value.
func (p *Project) Property(name string) (string, bool) {
	v, ok := p.Properties[name]
	return v, ok
}
