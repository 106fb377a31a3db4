// Package app implements the application layer for mvninspect.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/mvninspect/internal/adapters/detector"
	"go.trai.ch/mvninspect/internal/adapters/report"
	"go.trai.ch/mvninspect/internal/adapters/resolver"
	"go.trai.ch/mvninspect/internal/adapters/telemetry"
	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/mvninspect/internal/engine/aggregator"
	"go.trai.ch/mvninspect/internal/engine/walker"
	"go.trai.ch/zerr"
)

// timingSummaryLimit caps the number of spans logged by --timings.
const timingSummaryLimit = 15

// App represents the main application logic.
type App struct {
	settings ports.SettingsReader
	walker   *walker.Walker
	resolver ports.DependencyResolver
	cache    ports.ResolutionCache
	watcher  ports.Watcher
	logger   ports.Logger
	tracer   ports.Tracer
	out      io.Writer
}

// New creates a new App instance.
func New(
	settings ports.SettingsReader,
	walk *walker.Walker,
	deps ports.DependencyResolver,
	cache ports.ResolutionCache,
	watch ports.Watcher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		settings: settings,
		walker:   walk,
		resolver: deps,
		cache:    cache,
		watcher:  watch,
		logger:   log,
		tracer:   tracer,
		out:      os.Stdout,
	}
}

// WithOutput sets the writer reports are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// InspectOptions configuration for the Inspect and Watch methods.
// Paths are expected to be validated by the caller.
type InspectOptions struct {
	Descriptor      string
	SettingsFile    string
	LocalRepository string
	Format          string
	Offline         bool
	NoCache         bool
	Timings         bool
	LogJSON         bool
}

// jsonSwitcher is implemented by loggers that can emit JSON lines.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// Inspect walks the build, aggregates the options of every leaf module and
// writes the report. Recoverable failures end up in the report diagnostics.
func (a *App) Inspect(ctx context.Context, opts InspectOptions) error {
	format, err := a.prepare(opts)
	if err != nil {
		return err
	}

	if opts.Timings {
		bridge, shutdown := setupOTel()
		defer func() {
			for _, line := range bridge.Summary(timingSummaryLimit) {
				a.logger.Info(line)
			}
			shutdown()
		}()
	}

	result, _, err := a.inspect(ctx, opts)
	if err != nil {
		return err
	}
	return report.Write(a.out, format, result)
}

// prepare applies logging options and resolves the report format.
func (a *App) prepare(opts InspectOptions) (domain.Format, error) {
	if l, ok := a.logger.(jsonSwitcher); ok {
		l.SetJSON(opts.LogJSON)
	}
	return detector.ResolveFormat(detector.DetectEnvironment(), opts.Format)
}

func (a *App) inspect(ctx context.Context, opts InspectOptions) (*domain.Report, *domain.ModuleTree, error) {
	settings, err := a.settings.Read(opts.SettingsFile)
	if err != nil {
		return nil, nil, err
	}
	session := domain.NewRepositorySession(settings, opts.LocalRepository, opts.Offline)

	tree, err := a.walker.Discover(ctx, opts.Descriptor, session)
	if err != nil {
		return nil, nil, err
	}

	deps := a.resolver
	if !opts.NoCache {
		deps = resolver.WithCache(deps, a.cache, a.logger)
	}
	result, err := aggregator.New(deps, a.logger, a.tracer).BuildOptions(ctx, tree.Projects(), session)
	if err != nil {
		return nil, tree, err
	}
	result.Diagnostics = slices.Concat(tree.Diagnostics, result.Diagnostics)

	a.logger.Info(fmt.Sprintf("inspected %d modules, %d leaf modules, %d warnings",
		len(tree.Nodes), len(result.Modules), len(result.Diagnostics)))
	return result, tree, nil
}

// Clean removes the persisted resolution cache.
func (a *App) Clean(_ context.Context) error {
	path := domain.DefaultResolutionCachePath()
	a.logger.Info("removing resolution cache...")
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove resolution cache"), "path", path)
	}
	a.logger.Info("removed resolution cache")
	return nil
}

// setupOTel installs a TracerProvider that records span timings.
func setupOTel() (*telemetry.Bridge, func()) {
	bridge := telemetry.NewBridge()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)

	return bridge, func() {
		_ = tp.Shutdown(context.Background())
	}
}
