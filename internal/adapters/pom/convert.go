package pom

import (
	"path/filepath"
	"strings"

	"go.trai.ch/mvninspect/internal/core/domain"
)

func (in *interpolator) dependency(d rawDependency) domain.Dependency {
	dep := domain.Dependency{
		Coordinate: domain.Coordinate{
			GroupID:    in.Value(d.GroupID),
			ArtifactID: in.Value(d.ArtifactID),
			Version:    in.Value(d.Version),
		},
		Type:       in.Value(d.Type),
		Classifier: in.Value(d.Classifier),
		Scope:      domain.Scope(in.Value(d.Scope)),
		Optional:   strings.EqualFold(in.Value(d.Optional), "true"),
		SystemPath: in.Value(d.SystemPath),
	}
	if dep.Type == "" {
		dep.Type = domain.DefaultExtension
	}
	for _, e := range d.Exclusions {
		dep.Exclusions = append(dep.Exclusions, domain.Exclusion{
			GroupID:    in.Value(e.GroupID),
			ArtifactID: in.Value(e.ArtifactID),
		})
	}
	return dep
}

func (in *interpolator) plugins(raw []rawPlugin) []domain.Plugin {
	out := make([]domain.Plugin, 0, len(raw))
	for _, p := range raw {
		plugin := domain.Plugin{
			GroupID:       in.Value(p.GroupID),
			ArtifactID:    in.Value(p.ArtifactID),
			Version:       in.Value(p.Version),
			Configuration: in.configuration(p.Configuration),
		}
		if plugin.GroupID == "" {
			plugin.GroupID = domain.DefaultPluginGroupID
		}
		for _, e := range p.Executions {
			exec := domain.Execution{
				ID:            e.id(),
				Phase:         in.Value(e.Phase),
				Configuration: in.configuration(e.Configuration),
			}
			for _, g := range e.Goals {
				exec.Goals = append(exec.Goals, in.Value(g))
			}
			plugin.Executions = append(plugin.Executions, exec)
		}
		out = append(out, plugin)
	}
	return out
}

func (in *interpolator) configuration(n *rawNode) *domain.ConfigNode {
	if n == nil {
		return nil
	}
	out := &domain.ConfigNode{Name: n.XMLName.Local, Value: in.Value(n.Content)}
	for i := range n.Nodes {
		out.Children = append(out.Children, in.configuration(&n.Nodes[i]))
	}
	return out
}

// absolute resolves a descriptor path, written with forward slashes, against base.
func absolute(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
