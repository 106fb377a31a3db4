// Package walker discovers every module of a multi-module Maven build.
package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/zerr"
)

// Walker performs a pre-order, declaration-order walk of the module tree.
type Walker struct {
	reader ports.DescriptorReader
	logger ports.Logger
	tracer ports.Tracer
}

// New creates a Walker.
func New(reader ports.DescriptorReader, logger ports.Logger, tracer ports.Tracer) *Walker {
	return &Walker{reader: reader, logger: logger, tracer: tracer}
}

// walk carries the state of one Discover call.
type walk struct {
	*Walker
	session   domain.RepositorySession
	tree      *domain.ModuleTree
	visited   map[string]bool
	ancestors map[string]bool
}

// Discover reads the root descriptor and every submodule reachable from it.
// Only a failure on the root is returned as an error. Submodules that are
// missing, unreadable, cyclic or declared twice are skipped and recorded as
// diagnostics on the returned tree.
func (w *Walker) Discover(
	ctx context.Context,
	rootPath string,
	session domain.RepositorySession,
) (*domain.ModuleTree, error) {
	ctx, span := w.tracer.Start(ctx, "discover")
	defer span.End()
	span.SetAttribute(ports.SubjectAttribute, rootPath)

	root, err := w.reader.Read(ctx, rootPath, session)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		err = zerr.With(zerr.Wrap(err, domain.ErrRootDescriptor.Error()), "path", rootPath)
		span.RecordError(err)
		return nil, err
	}

	state := &walk{
		Walker:    w,
		session:   session,
		tree:      &domain.ModuleTree{},
		visited:   map[string]bool{root.File: true},
		ancestors: map[string]bool{},
	}
	if err := state.visit(ctx, root, domain.NoParent); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("mvninspect.modules", len(state.tree.Nodes))
	return state.tree, nil
}

func (s *walk) visit(ctx context.Context, p *domain.Project, parent int) error {
	idx := s.tree.Add(p, parent)
	if !p.IsAggregator() {
		return nil
	}

	s.ancestors[p.File] = true
	defer delete(s.ancestors, p.File)

	for _, name := range p.Modules {
		if err := ctx.Err(); err != nil {
			return err
		}

		child, err := s.child(ctx, p, name)
		if err != nil {
			return err
		}
		if child == nil {
			continue
		}
		if err := s.visit(ctx, child, idx); err != nil {
			return err
		}
	}
	return nil
}

// child reads the submodule name of p. It returns nil when the submodule was
// skipped, and an error only when the context is done.
func (s *walk) child(ctx context.Context, p *domain.Project, name string) (*domain.Project, error) {
	path := descriptorPath(p.BaseDir, name)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		s.skip(domain.DiagSubmoduleMissing, p, name, "descriptor "+path+" does not exist or is not a file")
		return nil, nil
	}

	path = canonical(path)
	switch {
	case s.ancestors[path]:
		s.skip(domain.DiagSubmoduleCycle, p, name, "descriptor "+path+" is one of its own aggregators")
		return nil, nil
	case s.visited[path]:
		s.skip(domain.DiagSubmoduleDuplicate, p, name, "descriptor "+path+" was already discovered")
		return nil, nil
	}
	s.visited[path] = true

	ctx, span := s.tracer.Start(ctx, "read descriptor")
	defer span.End()
	span.SetAttribute(ports.SubjectAttribute, path)

	child, err := s.reader.Read(ctx, path, s.session)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		span.RecordError(err)
		s.skip(domain.DiagSubmoduleUnreadable, p, name, err.Error())
		return nil, nil
	}
	return child, nil
}

func (s *walk) skip(kind domain.DiagnosticKind, p *domain.Project, name, message string) {
	s.tree.Diagnose(domain.Diagnostic{
		Kind:    kind,
		Module:  p.ID(),
		Subject: name,
		Message: message,
	})
	s.logger.Warn(fmt.Sprintf("skipping module %q of %s: %s", name, p.ID(), message))
}

// descriptorPath locates the descriptor of a declared module. Entries naming
// an .xml file are used as is, directories get pom.xml appended.
func descriptorPath(baseDir, module string) string {
	path := filepath.Join(baseDir, filepath.FromSlash(strings.TrimSpace(module)))
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return path
	}
	return filepath.Join(path, domain.PomFileName)
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path
}
