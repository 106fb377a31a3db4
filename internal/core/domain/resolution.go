package domain

// ResolutionRequest asks for the transitive artifact set of one dependency.
// Coordinate is the colon joined group:artifact:version string.
type ResolutionRequest struct {
	Coordinate string
	Type       string
	Classifier string
	Scope      Scope
	Exclusions []Exclusion
	Session    RepositorySession
}

// Test artifacts of a module are addressed by this type or classifier.
const (
	TypeTestJar     = "test-jar"
	ClassifierTests = "tests"
)

// ModuleTarget is where a module of the current build writes its classes.
type ModuleTarget struct {
	Project        *Project
	OutputPath     string
	TestOutputPath string
}

// PathFor returns the directory that stands in for the artifact d refers to.
func (t ModuleTarget) PathFor(d Dependency) string {
	if d.Type == TypeTestJar || d.Classifier == ClassifierTests {
		return t.TestOutputPath
	}
	return t.OutputPath
}

// ModuleTargets maps the coordinates of the modules in one run to their output
// directories. It is built once per run and handed down explicitly.
type ModuleTargets struct {
	byCoordinate map[Coordinate]ModuleTarget
}

// NewModuleTargets returns an empty lookup.
func NewModuleTargets() *ModuleTargets {
	return &ModuleTargets{byCoordinate: make(map[Coordinate]ModuleTarget)}
}

// Register records the output directories of p.
func (m *ModuleTargets) Register(p *Project) {
	m.byCoordinate[p.Coordinate] = ModuleTarget{
		Project:        p,
		OutputPath:     p.Build.OutputDirectory,
		TestOutputPath: p.Build.TestOutputDirectory,
	}
}

// Lookup returns the module registered for c.
func (m *ModuleTargets) Lookup(c Coordinate) (ModuleTarget, bool) {
	t, ok := m.byCoordinate[c]
	return t, ok
}

// Len returns the number of registered modules.
func (m *ModuleTargets) Len() int {
	return len(m.byCoordinate)
}
