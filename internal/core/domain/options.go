package domain

// DiagnosticKind classifies a recoverable failure.
type DiagnosticKind string

const (
	// DiagSubmoduleMissing is recorded when a declared submodule has no descriptor file.
	DiagSubmoduleMissing DiagnosticKind = "submodule-missing"
	// DiagSubmoduleUnreadable is recorded when a submodule descriptor cannot be read.
	DiagSubmoduleUnreadable DiagnosticKind = "submodule-unreadable"
	// DiagSubmoduleCycle is recorded when a submodule points back at one of its aggregators.
	DiagSubmoduleCycle DiagnosticKind = "submodule-cycle"
	// DiagSubmoduleDuplicate is recorded when a descriptor is declared by more than one aggregator.
	DiagSubmoduleDuplicate DiagnosticKind = "submodule-duplicate"
	// DiagDependencyUnresolved is recorded when a declared dependency cannot be resolved.
	DiagDependencyUnresolved DiagnosticKind = "dependency-unresolved"
)

// Diagnostic is one recoverable failure attached to a report.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Module  string         `json:"module" yaml:"module"`
	Subject string         `json:"subject" yaml:"subject"`
	Message string         `json:"message" yaml:"message"`
}

// ResolvedDependency is one artifact on a module's classpath.
// Identity is the coordinate only.
type ResolvedDependency struct {
	Coordinate `yaml:",inline"`
	Scope      Scope  `json:"scope" yaml:"scope"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
}

// DependencySet is an insertion ordered set of resolved dependencies keyed by
// coordinate. The first insertion of a coordinate wins. The zero value is ready to use.
type DependencySet struct {
	items []ResolvedDependency
	index map[Coordinate]int
}

// Add inserts d unless its coordinate is present. It reports whether d was inserted.
func (s *DependencySet) Add(d ResolvedDependency) bool {
	if s.index == nil {
		s.index = make(map[Coordinate]int)
	}
	if _, ok := s.index[d.Coordinate]; ok {
		return false
	}
	s.index[d.Coordinate] = len(s.items)
	s.items = append(s.items, d)
	return true
}

// Get returns the entry stored for c.
func (s *DependencySet) Get(c Coordinate) (ResolvedDependency, bool) {
	i, ok := s.index[c]
	if !ok {
		return ResolvedDependency{}, false
	}
	return s.items[i], true
}

// Len returns the number of entries.
func (s *DependencySet) Len() int {
	return len(s.items)
}

// Items returns a copy of the entries in insertion order.
func (s *DependencySet) Items() []ResolvedDependency {
	out := make([]ResolvedDependency, len(s.items))
	copy(out, s.items)
	return out
}

// ResolutionOutcome is the result of resolving one declared dependency.
// Exactly one of Artifacts and Err is meaningful.
type ResolutionOutcome struct {
	Dependency Dependency
	Artifacts  []ResolvedDependency
	Reactor    bool
	Err        error
}

// OK reports whether the dependency resolved.
func (o ResolutionOutcome) OK() bool {
	return o.Err == nil
}

// ModuleOptions is the flattened compile description of one leaf module.
type ModuleOptions struct {
	ProjectID      string               `json:"projectId" yaml:"projectId"`
	Name           string               `json:"name,omitempty" yaml:"name,omitempty"`
	BaseDir        string               `json:"baseDir" yaml:"baseDir"`
	Source         string               `json:"source" yaml:"source"`
	Encoding       string               `json:"encoding" yaml:"encoding"`
	SourcePaths    []string             `json:"sourcePaths" yaml:"sourcePaths"`
	TestSourcePath string               `json:"testSourcePath" yaml:"testSourcePath"`
	OutputPath     string               `json:"outputPath" yaml:"outputPath"`
	TestOutputPath string               `json:"testOutputPath" yaml:"testOutputPath"`
	Dependencies   []ResolvedDependency `json:"dependencies" yaml:"dependencies"`
	Outcomes       []ResolutionOutcome  `json:"-" yaml:"-"`
}

// Failed returns the outcomes that did not resolve.
func (m *ModuleOptions) Failed() []ResolutionOutcome {
	var out []ResolutionOutcome
	for _, o := range m.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Report is the result of one inspection run.
type Report struct {
	Modules     []ModuleOptions `json:"modules" yaml:"modules"`
	Diagnostics []Diagnostic    `json:"diagnostics" yaml:"diagnostics"`
}
