package pom

import "strings"

// inherit folds a lineage into a single raw model. lineage[0] is the
// descriptor being read, the last element its top-most ancestor.
// Values stay uninterpolated so expressions are evaluated in the child's context.
func inherit(lineage []*rawProject) *rawProject {
	merged := *lineage[len(lineage)-1]
	if merged.Packaging == "" {
		merged.Packaging = "jar"
	}

	for i := len(lineage) - 2; i >= 0; i-- {
		merged = inheritFrom(merged, *lineage[i])
	}
	return &merged
}

func inheritFrom(parent, child rawProject) rawProject {
	out := child

	if out.GroupID == "" {
		out.GroupID = parent.GroupID
		if child.Parent != nil && child.Parent.GroupID != "" {
			out.GroupID = child.Parent.GroupID
		}
	}
	if out.Version == "" {
		out.Version = parent.Version
		if child.Parent != nil && child.Parent.Version != "" {
			out.Version = child.Parent.Version
		}
	}
	if out.Packaging == "" {
		out.Packaging = "jar"
	}

	out.Properties = make(rawProperties, len(parent.Properties)+len(child.Properties))
	for k, v := range parent.Properties {
		out.Properties[k] = v
	}
	for k, v := range child.Properties {
		out.Properties[k] = v
	}

	out.Dependencies = mergeDependencies(parent.Dependencies, child.Dependencies)
	out.DependencyManagement = mergeDependencies(parent.DependencyManagement, child.DependencyManagement)
	out.Build = inheritBuild(parent.Build, child.Build)
	return out
}

// mergeDependencies keeps the child's entries in order, followed by the
// parent's entries the child does not redeclare.
func mergeDependencies(parent, child []rawDependency) []rawDependency {
	out := make([]rawDependency, 0, len(parent)+len(child))
	seen := make(map[string]struct{}, len(child))
	for _, d := range child {
		seen[d.key()] = struct{}{}
		out = append(out, d)
	}
	for _, d := range parent {
		if _, ok := seen[d.key()]; !ok {
			out = append(out, d)
		}
	}
	return out
}

func inheritBuild(parent, child rawBuild) rawBuild {
	out := child
	pick := func(c, p string) string {
		if c != "" {
			return c
		}
		return p
	}
	out.Directory = pick(child.Directory, parent.Directory)
	out.SourceDirectory = pick(child.SourceDirectory, parent.SourceDirectory)
	out.TestSourceDirectory = pick(child.TestSourceDirectory, parent.TestSourceDirectory)
	out.OutputDirectory = pick(child.OutputDirectory, parent.OutputDirectory)
	out.TestOutputDirectory = pick(child.TestOutputDirectory, parent.TestOutputDirectory)
	out.Plugins = mergePlugins(parent.Plugins, child.Plugins)
	out.PluginManagement = mergePlugins(parent.PluginManagement, child.PluginManagement)
	return out
}

// applyPluginManagement completes declared plugins with their managed version,
// configuration and executions.
func applyPluginManagement(b *rawBuild) {
	if len(b.PluginManagement) == 0 {
		return
	}
	managed := make(map[string]rawPlugin, len(b.PluginManagement))
	for _, p := range b.PluginManagement {
		managed[p.key()] = p
	}
	b.Plugins = append([]rawPlugin(nil), b.Plugins...)
	for i, p := range b.Plugins {
		if m, ok := managed[p.key()]; ok {
			b.Plugins[i] = mergePlugin(m, p)
		}
	}
}

func mergePlugins(parent, child []rawPlugin) []rawPlugin {
	out := make([]rawPlugin, 0, len(parent)+len(child))
	index := make(map[string]int, len(parent))
	for _, p := range parent {
		index[p.key()] = len(out)
		out = append(out, p)
	}
	for _, c := range child {
		if i, ok := index[c.key()]; ok {
			out[i] = mergePlugin(out[i], c)
			continue
		}
		index[c.key()] = len(out)
		out = append(out, c)
	}
	return out
}

// mergePlugin overlays over onto base. over dominates.
func mergePlugin(base, over rawPlugin) rawPlugin {
	out := over
	if out.GroupID == "" {
		out.GroupID = base.GroupID
	}
	if out.Version == "" {
		out.Version = base.Version
	}
	out.Configuration = mergeNode(base.Configuration, over.Configuration)

	out.Executions = make([]rawExecution, 0, len(base.Executions)+len(over.Executions))
	index := make(map[string]int, len(base.Executions))
	for _, e := range base.Executions {
		index[e.id()] = len(out.Executions)
		out.Executions = append(out.Executions, e)
	}
	for _, e := range over.Executions {
		i, ok := index[e.id()]
		if !ok {
			index[e.id()] = len(out.Executions)
			out.Executions = append(out.Executions, e)
			continue
		}
		merged := e
		if merged.Phase == "" {
			merged.Phase = out.Executions[i].Phase
		}
		merged.Goals = unionGoals(out.Executions[i].Goals, e.Goals)
		merged.Configuration = mergeNode(out.Executions[i].Configuration, e.Configuration)
		out.Executions[i] = merged
	}
	return out
}

func unionGoals(base, over []string) []string {
	out := append([]string(nil), base...)
	for _, g := range over {
		found := false
		for _, b := range base {
			if b == g {
				found = true
				break
			}
		}
		if !found {
			out = append(out, g)
		}
	}
	return out
}

// mergeNode merges configuration trees by element name. A name present in
// over replaces the base elements of that name, except that single elements
// on both sides are merged recursively.
func mergeNode(base, over *rawNode) *rawNode {
	if over == nil {
		return base
	}
	if base == nil {
		return over
	}
	if len(over.Nodes) == 0 && strings.TrimSpace(over.Content) != "" {
		return over
	}

	out := &rawNode{XMLName: over.XMLName, Content: over.Content}
	handled := make(map[string]struct{})
	for _, b := range base.Nodes {
		name := b.XMLName.Local
		if _, ok := handled[name]; ok {
			continue
		}
		handled[name] = struct{}{}

		bases := nodesNamed(base, name)
		overs := nodesNamed(over, name)
		switch {
		case len(overs) == 0:
			out.Nodes = append(out.Nodes, bases...)
		case len(overs) == 1 && len(bases) == 1:
			out.Nodes = append(out.Nodes, *mergeNode(&bases[0], &overs[0]))
		default:
			out.Nodes = append(out.Nodes, overs...)
		}
	}
	for _, o := range over.Nodes {
		if _, ok := handled[o.XMLName.Local]; !ok {
			out.Nodes = append(out.Nodes, o)
		}
	}
	return out
}

func nodesNamed(n *rawNode, name string) []rawNode {
	var out []rawNode
	for _, c := range n.Nodes {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}
