package domain

// NoParent is the parent index of the root node.
const NoParent = -1

// ModuleNode is one discovered project. Parent is an index into the owning
// tree's node table, never a pointer.
type ModuleNode struct {
	Project *Project
	Parent  int
	Depth   int
}

// ModuleTree is the flat, pre-ordered result of a module walk.
type ModuleTree struct {
	Nodes       []ModuleNode
	Diagnostics []Diagnostic
}

// Add appends a project below parent and returns its index.
func (t *ModuleTree) Add(p *Project, parent int) int {
	depth := 0
	if parent != NoParent {
		depth = t.Nodes[parent].Depth + 1
	}
	t.Nodes = append(t.Nodes, ModuleNode{Project: p, Parent: parent, Depth: depth})
	return len(t.Nodes) - 1
}

// Diagnose records a recoverable problem found during the walk.
func (t *ModuleTree) Diagnose(d Diagnostic) {
	t.Diagnostics = append(t.Diagnostics, d)
}

// Projects returns the projects in traversal order.
func (t *ModuleTree) Projects() []*Project {
	out := make([]*Project, len(t.Nodes))
	for i, n := range t.Nodes {
		out[i] = n.Project
	}
	return out
}

// ParentOf returns the parent project of node i.
func (t *ModuleTree) ParentOf(i int) (*Project, bool) {
	if i < 0 || i >= len(t.Nodes) || t.Nodes[i].Parent == NoParent {
		return nil, false
	}
	return t.Nodes[t.Nodes[i].Parent].Project, true
}

// Children returns the indices of the direct children of node i in declaration order.
func (t *ModuleTree) Children(i int) []int {
	var out []int
	for j, n := range t.Nodes {
		if n.Parent == i {
			out = append(out, j)
		}
	}
	return out
}

// Files returns the descriptor paths of all nodes in traversal order.
func (t *ModuleTree) Files() []string {
	out := make([]string, len(t.Nodes))
	for i, n := range t.Nodes {
		out[i] = n.Project.File
	}
	return out
}
