package aggregator

import (
	"path/filepath"
	"strings"

	"go.trai.ch/mvninspect/internal/core/domain"
)

const (
	// BuildHelperGroupID and BuildHelperArtifactID identify the plugin that
	// contributes additional source directories.
	BuildHelperGroupID    = "org.codehaus.mojo"
	BuildHelperArtifactID = "build-helper-maven-plugin"
	// AddSourceGoal is the build helper goal that adds source directories.
	AddSourceGoal = "add-source"

	compilerArtifactID = "maven-compiler-plugin"

	// DefaultSourceLevel is reported when a module declares no Java level.
	DefaultSourceLevel = "1.8"
	// DefaultEncoding is reported when a module declares no source encoding.
	DefaultEncoding = "UTF-8"
)

// sourcePaths returns the primary source directory followed by every source
// added through the build helper plugin.
func sourcePaths(p *domain.Project) []string {
	paths := []string{p.Build.SourceDirectory}

	plugin := p.Plugin(BuildHelperGroupID, BuildHelperArtifactID)
	if plugin == nil {
		return paths
	}
	for _, exec := range plugin.Executions {
		if !exec.HasGoal(AddSourceGoal) {
			continue
		}
		sources := exec.Configuration.Child("sources")
		if sources == nil {
			sources = plugin.Configuration.Child("sources")
		}
		for _, s := range sources.ChildrenNamed("source") {
			if v := strings.TrimSpace(s.Value); v != "" {
				paths = append(paths, absolute(p.BaseDir, v))
			}
		}
	}
	return paths
}

func sourceLevel(p *domain.Project) string {
	for _, prop := range []string{"maven.compiler.release", "maven.compiler.source"} {
		if v, ok := p.Property(prop); ok && v != "" {
			return v
		}
	}
	if v := compilerSetting(p, "release", "source"); v != "" {
		return v
	}
	return DefaultSourceLevel
}

func encoding(p *domain.Project) string {
	if v, ok := p.Property("project.build.sourceEncoding"); ok && v != "" {
		return v
	}
	if v := compilerSetting(p, "encoding"); v != "" {
		return v
	}
	return DefaultEncoding
}

// compilerSetting returns the first non-empty compiler plugin configuration value.
func compilerSetting(p *domain.Project, names ...string) string {
	plugin := p.Plugin(domain.DefaultPluginGroupID, compilerArtifactID)
	if plugin == nil {
		return ""
	}
	for _, name := range names {
		if n := plugin.Configuration.Child(name); n != nil && n.Value != "" {
			return n.Value
		}
	}
	return ""
}

func absolute(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
