package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Monitor accumulates elapsed time and a counter per named tag across
// the life of a process, the same role the original source's global
// MiniMon instance played (start(tag)/stop(tag, counters...), print a
// summary at the end). Unlike MiniMon it also opens a real OpenTelemetry
// span per tag, so a connected collector sees the same breakdown; when
// tracing is disabled (telemetry.Init's default) the span calls are
// harmless no-ops and only the in-process accounting is observable.
type Monitor struct {
	mu      sync.Mutex
	tracer  trace.Tracer
	entries map[string]*entry
	order   []string
}

type entry struct {
	elapsed time.Duration
	count   int64
	span    trace.Span
	started time.Time
}

// NewMonitor returns a Monitor using the global TracerProvider (set up
// by Init, or the no-op default if tracing is disabled).
func NewMonitor() *Monitor {
	return &Monitor{
		tracer:  otel.Tracer("multigrid3d"),
		entries: make(map[string]*entry),
	}
}

// Start begins timing tag, opening a nested span under ctx. Call the
// returned function to stop timing and record count additional units
// of work (cells processed, sweeps performed, and so on) against tag.
func (m *Monitor) Start(ctx context.Context, tag string) func(count int64) {
	ctx, span := m.tracer.Start(ctx, tag)
	started := time.Now()
	_ = ctx
	return func(count int64) {
		elapsed := time.Since(started)
		span.SetAttributes(attribute.Int64("count", count))
		span.End()

		m.mu.Lock()
		defer m.mu.Unlock()
		e, ok := m.entries[tag]
		if !ok {
			e = &entry{}
			m.entries[tag] = e
			m.order = append(m.order, tag)
		}
		e.elapsed += elapsed
		e.count += count
	}
}

// Summary writes the accumulated per-tag elapsed time and counts to w,
// in first-seen order, the same report MiniMon printed at shutdown.
func (m *Monitor) Summary(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tag := range m.order {
		e := m.entries[tag]
		fmt.Fprintf(w, "%-24s %12s  count=%d\n", tag, e.elapsed, e.count)
	}
}
