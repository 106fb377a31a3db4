package pom

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxLineage bounds parent chains so a broken repository cannot recurse forever.
const maxLineage = 64

var _ ports.DescriptorReader = (*Reader)(nil)

// Reader builds effective project models from descriptors on disk and POMs
// in the repository. Repository models of release versions are memoised per
// local repository, so callers must treat returned projects of Model as read-only.
type Reader struct {
	fetcher ports.ArtifactFetcher

	mu     sync.Mutex
	raw    map[string]*rawProject
	models map[string]*domain.Project
}

// NewReader creates a Reader that fetches missing parents and BOMs through fetcher.
func NewReader(fetcher ports.ArtifactFetcher) *Reader {
	return &Reader{
		fetcher: fetcher,
		raw:     make(map[string]*rawProject),
		models:  make(map[string]*domain.Project),
	}
}

// source is one descriptor of a lineage. local descriptors come from the
// project tree and may locate their parent through relativePath.
type source struct {
	raw   *rawProject
	file  string
	local bool
}

// Read builds the effective model of the descriptor at path.
func (r *Reader) Read(ctx context.Context, path string, session domain.RepositorySession) (*domain.Project, error) {
	file := canonical(path)
	raw, err := decodeFile(file)
	if err != nil {
		return nil, err
	}
	return r.build(ctx, session, source{raw: raw, file: file, local: true}, nil)
}

// Model builds the effective model of the POM identified by coordinate.
func (r *Reader) Model(
	ctx context.Context,
	session domain.RepositorySession,
	coordinate domain.Coordinate,
) (*domain.Project, error) {
	return r.repositoryModel(ctx, session, coordinate, nil)
}

func (r *Reader) repositoryModel(
	ctx context.Context,
	session domain.RepositorySession,
	c domain.Coordinate,
	importing []string,
) (*domain.Project, error) {
	key := session.LocalRepository + "|" + c.String()
	if !c.IsSnapshot() {
		r.mu.Lock()
		model, ok := r.models[key]
		r.mu.Unlock()
		if ok {
			return model, nil
		}
	}

	src, err := r.repositorySource(ctx, session, c)
	if err != nil {
		return nil, err
	}
	model, err := r.build(ctx, session, src, importing)
	if err != nil {
		return nil, err
	}

	if !c.IsSnapshot() {
		r.mu.Lock()
		r.models[key] = model
		r.mu.Unlock()
	}
	return model, nil
}

func (r *Reader) repositorySource(
	ctx context.Context,
	session domain.RepositorySession,
	c domain.Coordinate,
) (source, error) {
	path, err := r.fetcher.Fetch(ctx, session, domain.NewArtifact(c, domain.PomExtension, ""))
	if err != nil {
		return source{}, err
	}

	if !c.IsSnapshot() {
		r.mu.Lock()
		raw, ok := r.raw[path]
		r.mu.Unlock()
		if ok {
			return source{raw: raw, file: path}, nil
		}
	}

	raw, err := decodeFile(path)
	if err != nil {
		return source{}, err
	}
	if !c.IsSnapshot() {
		r.mu.Lock()
		r.raw[path] = raw
		r.mu.Unlock()
	}
	return source{raw: raw, file: path}, nil
}

// lineage returns src followed by its ancestors, nearest first.
func (r *Reader) lineage(ctx context.Context, session domain.RepositorySession, src source) ([]source, error) {
	chain := []source{src}
	seen := map[string]struct{}{src.file: {}}

	for cur := src; cur.raw.Parent != nil; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(chain) >= maxLineage {
			return nil, zerr.With(domain.ErrParentCycle, "path", src.file)
		}

		parent, err := r.locateParent(ctx, session, cur)
		if err != nil {
			return nil, zerr.With(err, "path", cur.file)
		}
		if _, ok := seen[parent.file]; ok {
			return nil, zerr.With(domain.ErrParentCycle, "path", parent.file)
		}
		seen[parent.file] = struct{}{}
		chain = append(chain, parent)
		cur = parent
	}
	return chain, nil
}

func (r *Reader) locateParent(ctx context.Context, session domain.RepositorySession, child source) (source, error) {
	p := child.raw.Parent
	if child.local {
		if file, ok := relativeParent(child.file, p); ok {
			raw, err := decodeFile(file)
			if err == nil && matchesParent(raw, p) {
				return source{raw: raw, file: file, local: true}, nil
			}
		}
	}

	c := domain.Coordinate{
		GroupID:    strings.TrimSpace(p.GroupID),
		ArtifactID: strings.TrimSpace(p.ArtifactID),
		Version:    strings.TrimSpace(p.Version),
	}
	if c.GroupID == "" || c.ArtifactID == "" || c.Version == "" || strings.Contains(c.String(), "${") {
		return source{}, zerr.With(domain.ErrParentResolution, "parent", c.String())
	}

	src, err := r.repositorySource(ctx, session, c)
	if err != nil {
		return source{}, zerr.With(zerr.Wrap(err, domain.ErrParentResolution.Error()), "parent", c.String())
	}
	return src, nil
}

// relativeParent returns the descriptor named by the parent's relativePath,
// defaulting to ../pom.xml. An explicitly empty relativePath disables the lookup.
func relativeParent(childFile string, p *rawParent) (string, bool) {
	rel := "../" + domain.PomFileName
	if p.RelativePath != nil {
		rel = strings.TrimSpace(*p.RelativePath)
	}
	if rel == "" {
		return "", false
	}

	candidate := absolute(filepath.Dir(childFile), rel)
	info, err := os.Stat(candidate)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		candidate = filepath.Join(candidate, domain.PomFileName)
		if info, err = os.Stat(candidate); err != nil {
			return "", false
		}
	}
	if !info.Mode().IsRegular() {
		return "", false
	}
	return canonical(candidate), true
}

func matchesParent(raw *rawProject, p *rawParent) bool {
	groupID, version := raw.GroupID, raw.Version
	if raw.Parent != nil {
		groupID = orDefault(groupID, raw.Parent.GroupID)
		version = orDefault(version, raw.Parent.Version)
	}
	if strings.TrimSpace(groupID) != strings.TrimSpace(p.GroupID) ||
		strings.TrimSpace(raw.ArtifactID) != strings.TrimSpace(p.ArtifactID) {
		return false
	}
	return strings.Contains(version, "${") || strings.TrimSpace(version) == strings.TrimSpace(p.Version)
}

// build folds the lineage of src and interpolates the result into a project.
//
//nolint:funlen // mirrors the order in which Maven assembles the effective model
func (r *Reader) build(
	ctx context.Context,
	session domain.RepositorySession,
	src source,
	importing []string,
) (*domain.Project, error) {
	chain, err := r.lineage(ctx, session, src)
	if err != nil {
		return nil, err
	}
	raws := make([]*rawProject, len(chain))
	for i, s := range chain {
		raws[i] = s.raw
	}
	merged := inherit(raws)
	applyPluginManagement(&merged.Build)

	baseDir := filepath.Dir(src.file)
	in := newInterpolator()
	for k, v := range merged.Properties {
		in.Set(k, v)
	}
	in.Set("basedir", baseDir)
	in.setModel("basedir", baseDir)

	var parent *domain.Coordinate
	if p := src.raw.Parent; p != nil {
		in.setModel("parent.groupId", p.GroupID)
		in.setModel("parent.artifactId", p.ArtifactID)
		in.setModel("parent.version", p.Version)
		parent = &domain.Coordinate{
			GroupID:    in.Value(p.GroupID),
			ArtifactID: in.Value(p.ArtifactID),
			Version:    in.Value(p.Version),
		}
	}

	in.setModel("groupId", merged.GroupID)
	in.setModel("artifactId", merged.ArtifactID)
	in.setModel("version", merged.Version)
	in.setModel("packaging", merged.Packaging)
	in.setModel("name", merged.Name)

	project := &domain.Project{
		Coordinate: domain.Coordinate{
			GroupID:    in.Value(merged.GroupID),
			ArtifactID: in.Value(merged.ArtifactID),
			Version:    in.Value(merged.Version),
		},
		Packaging: in.Value(merged.Packaging),
		Name:      in.Value(merged.Name),
		File:      src.file,
		BaseDir:   baseDir,
		Parent:    parent,
	}
	if project.GroupID == "" || project.ArtifactID == "" || project.Version == "" {
		return nil, zerr.With(domain.ErrDescriptorInvalid, "path", src.file)
	}
	in.setModel("groupId", project.GroupID)
	in.setModel("artifactId", project.ArtifactID)
	in.setModel("version", project.Version)
	in.setModel("packaging", project.Packaging)
	in.setModel("name", project.Name)

	project.Build = buildPaths(in, baseDir, merged.Build)
	project.Build.Plugins = in.plugins(merged.Build.Plugins)

	for _, m := range merged.Modules {
		if name := in.Value(m); name != "" {
			project.Modules = append(project.Modules, name)
		}
	}
	project.Properties = make(map[string]string, len(merged.Properties))
	for k, v := range merged.Properties {
		project.Properties[k] = in.Value(v)
	}

	managed, err := r.management(ctx, session, in, merged.DependencyManagement, slices.Concat(importing, []string{project.ID()}))
	if err != nil {
		return nil, zerr.With(err, "path", src.file)
	}
	project.DependencyManagement = managed
	project.Dependencies = applyManagement(in, merged.Dependencies, managed)
	return project, nil
}

func buildPaths(in *interpolator, baseDir string, b rawBuild) domain.Build {
	var out domain.Build
	resolve := func(raw, def, key string) string {
		p := absolute(baseDir, in.Value(orDefault(raw, def)))
		in.setModel("build."+key, p)
		return p
	}
	out.Directory = resolve(b.Directory, "target", "directory")
	out.SourceDirectory = resolve(b.SourceDirectory, "src/main/java", "sourceDirectory")
	out.TestSourceDirectory = resolve(b.TestSourceDirectory, "src/test/java", "testSourceDirectory")
	out.OutputDirectory = resolve(b.OutputDirectory, "${project.build.directory}/classes", "outputDirectory")
	out.TestOutputDirectory = resolve(b.TestOutputDirectory, "${project.build.directory}/test-classes", "testOutputDirectory")
	return out
}

// management returns the effective dependency management: declared entries
// first, then the entries of imported BOMs in declaration order. The first
// entry for a key wins.
func (r *Reader) management(
	ctx context.Context,
	session domain.RepositorySession,
	in *interpolator,
	raw []rawDependency,
	importing []string,
) ([]domain.Dependency, error) {
	var (
		out     []domain.Dependency
		imports []domain.Dependency
		seen    = make(map[string]struct{}, len(raw))
	)
	add := func(d domain.Dependency) {
		if _, ok := seen[d.ManagementKey()]; ok {
			return
		}
		seen[d.ManagementKey()] = struct{}{}
		out = append(out, d)
	}

	for _, rd := range raw {
		d := in.dependency(rd)
		if d.Scope == domain.ScopeImport && d.Type == domain.PomExtension {
			imports = append(imports, d)
			continue
		}
		add(d)
	}

	for _, d := range imports {
		if slices.Contains(importing, d.Coordinate.String()) {
			continue
		}
		if d.Version == "" || strings.Contains(d.Version, "${") {
			return nil, zerr.With(domain.ErrImportResolution, "bom", d.Coordinate.String())
		}
		bom, err := r.repositoryModel(ctx, session, d.Coordinate, importing)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrImportResolution.Error()), "bom", d.Coordinate.String())
		}
		for _, m := range bom.DependencyManagement {
			add(m)
		}
	}
	return out, nil
}

// applyManagement converts declared dependencies and completes them from
// dependency management. Scope defaults to compile.
func applyManagement(in *interpolator, raw []rawDependency, managed []domain.Dependency) []domain.Dependency {
	index := make(map[string]domain.Dependency, len(managed))
	for _, m := range managed {
		index[m.ManagementKey()] = m
	}

	out := make([]domain.Dependency, 0, len(raw))
	for _, rd := range raw {
		d := in.dependency(rd)
		if m, ok := index[d.ManagementKey()]; ok {
			if d.Version == "" {
				d.Version = m.Version
			}
			if d.Scope == "" {
				d.Scope = m.Scope
			}
			if len(d.Exclusions) == 0 {
				d.Exclusions = m.Exclusions
			}
			if !d.Optional {
				d.Optional = m.Optional
			}
		}
		if d.Scope == "" {
			d.Scope = domain.ScopeCompile
		}
		out = append(out, d)
	}
	return out
}

// canonical returns the absolute, symlink free form of path. Paths that do not
// exist are returned absolute so the subsequent read reports the failure.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
