package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/mvninspect/internal/adapters/report"
	"go.trai.ch/mvninspect/internal/adapters/watcher"
	"go.trai.ch/mvninspect/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// descriptorSet is the set of descriptor files of the last inspection.
type descriptorSet struct {
	mu    sync.RWMutex
	files map[string]struct{}
}

func (s *descriptorSet) replace(files []string) {
	m := make(map[string]struct{}, len(files))
	for _, f := range files {
		m[filepath.Clean(f)] = struct{}{}
	}
	s.mu.Lock()
	s.files = m
	s.mu.Unlock()
}

// relevant reports whether a change to path can alter the module tree.
func (s *descriptorSet) relevant(path string) bool {
	path = filepath.Clean(path)
	if filepath.Base(path) == domain.PomFileName {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[path]
	return ok
}

// Watch inspects once and re-inspects whenever a descriptor of the build
// changes, until ctx is done. Failed inspections are logged and the
// watcher keeps running.
func (a *App) Watch(ctx context.Context, opts InspectOptions) error {
	format, err := a.prepare(opts)
	if err != nil {
		return err
	}

	known := &descriptorSet{}
	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		select {
		case changes <- paths:
		default:
			// A re-inspection is already queued and will see these changes.
		}
	})

	if err := a.watchOnce(ctx, opts, format, known); err != nil {
		return err
	}
	if ctx.Err() != nil {
		// Event processing never started.
		return a.watcher.Stop()
	}

	g, ctx := errgroup.WithContext(ctx)

	// Event Routine
	g.Go(func() error {
		for event := range a.watcher.Events() {
			if known.relevant(event.Path) {
				debouncer.Add(event.Path)
			}
		}
		return nil
	})

	// Inspection Routine
	g.Go(func() error {
		defer func() {
			_ = a.watcher.Stop()
		}()
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-changes:
				a.logger.Info(fmt.Sprintf("%s changed, inspecting again", strings.Join(paths, ", ")))
				if err := a.watchOnce(ctx, opts, format, known); err != nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}

// watchOnce runs one inspection and extends the watch list with the
// directories of every discovered descriptor. Only watch failures are returned.
func (a *App) watchOnce(ctx context.Context, opts InspectOptions, format domain.Format, known *descriptorSet) error {
	files := []string{opts.Descriptor}

	result, tree, err := a.inspect(ctx, opts)
	switch {
	case ctx.Err() != nil:
		return nil
	case err != nil:
		a.logger.Error(err)
	default:
		if err := report.Write(a.out, format, result); err != nil {
			a.logger.Error(err)
		}
	}
	if tree != nil {
		files = tree.Files()
	}
	known.replace(files)

	dirs := make([]string, 0, len(files))
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}
	return a.watcher.Watch(ctx, dirs)
}
