package telemetry

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/mvninspect/internal/core/ports"
)

// Timing is the recorded duration of one finished span.
type Timing struct {
	Name     string
	Subject  string
	Duration time.Duration
	Failed   bool
}

// Bridge implements sdktrace.SpanProcessor and collects span timings.
type Bridge struct {
	mu      sync.Mutex
	timings []Timing
}

// NewBridge returns an empty Bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records the duration of a finished span.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	t := Timing{
		Name:     s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
		Failed:   s.Status().Code == codes.Error,
	}
	for _, kv := range s.Attributes() {
		if string(kv.Key) == ports.SubjectAttribute {
			t.Subject = kv.Value.Emit()
		}
	}

	b.mu.Lock()
	b.timings = append(b.timings, t)
	b.mu.Unlock()
}

// Timings returns the recorded timings, slowest first.
func (b *Bridge) Timings() []Timing {
	b.mu.Lock()
	out := slices.Clone(b.timings)
	b.mu.Unlock()

	slices.SortStableFunc(out, func(x, y Timing) int {
		return cmp.Compare(y.Duration, x.Duration)
	})
	return out
}

// Summary renders at most limit timings as log lines. A limit <= 0 renders all.
func (b *Bridge) Summary(limit int) []string {
	timings := b.Timings()
	if limit > 0 && len(timings) > limit {
		timings = timings[:limit]
	}

	lines := make([]string, 0, len(timings))
	for _, t := range timings {
		line := t.Name
		if t.Subject != "" {
			line += " " + t.Subject
		}
		line += fmt.Sprintf(" took %s", t.Duration.Round(time.Millisecond))
		if t.Failed {
			line += " (failed)"
		}
		lines = append(lines, line)
	}
	return lines
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
