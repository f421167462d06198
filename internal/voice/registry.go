package voice

import (
	"context"
	"log/slog"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/timbre-tts/timbre/internal/observe"
)

// Option is a functional option for configuring a [Registry].
type Option func(*Registry)

// WithLogger sets the logger the registry emits scan summaries and transcript
// warnings through. Default: [slog.Default].
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithMetrics sets the metrics instance refresh operations are recorded on.
// Default: [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// Registry unifies predefined and file-discovered voices behind a read-query
// surface and a single mutating operation, [Registry.Refresh].
//
// All methods are safe for concurrent use. The predefined catalogue is
// immutable after construction; the file-voice list is guarded by an RWMutex
// and replaced as a whole, so readers see either the pre-refresh or the
// complete post-refresh list, never an intermediate state.
type Registry struct {
	dir        string
	predefined map[string]string
	log        *slog.Logger
	metrics    *observe.Metrics

	mu         sync.RWMutex
	fileVoices []VoiceInfo
}

// New constructs a registry over the given voices directory and predefined
// voice catalogue, then performs one synchronous [Registry.Refresh] so the
// registry is queryable in a consistent state immediately.
//
// dir is not required to exist; a missing directory simply yields zero file
// voices. predefined maps voice names to opaque descriptor strings and is
// copied, so later mutation by the caller does not affect the registry.
func New(dir string, predefined map[string]string, opts ...Option) *Registry {
	r := &Registry{
		dir:        dir,
		predefined: maps.Clone(predefined),
	}
	for _, o := range opts {
		o(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	if r.metrics == nil {
		r.metrics = observe.DefaultMetrics()
	}
	if r.predefined == nil {
		r.predefined = map[string]string{}
	}

	r.Refresh(context.Background())
	return r
}

// Refresh rescans the voices directory and atomically replaces the file-voice
// list. Safe to call from any goroutine at any time, including concurrently
// with other refreshes; when two refreshes race, the last swap wins.
//
// Refresh cannot fail: a missing or unreadable directory yields an empty
// list and a bad transcript only nils out that voice's transcript. All scan
// I/O happens before the lock is taken, keeping the critical section O(1).
func (r *Registry) Refresh(ctx context.Context) {
	ctx, span := observe.StartSpan(ctx, "voice.refresh")
	defer span.End()

	start := time.Now()
	voices, listed := scanVoices(ctx, r.dir, r.log, r.metrics)

	r.mu.Lock()
	r.fileVoices = voices
	r.mu.Unlock()

	status := "ok"
	if !listed {
		status = "unlisted"
	}
	r.metrics.RecordRefresh(ctx, time.Since(start).Seconds(), status)
	r.metrics.SetVoicesAvailable(ctx, string(SourcePredefined), int64(len(r.predefined)))
	r.metrics.SetVoicesAvailable(ctx, string(SourceFile), int64(len(voices)))

	r.log.Info("voice registry refreshed",
		"dir", r.dir,
		"predefined", len(r.predefined),
		"file", len(voices),
	)
}

// AllVoices returns predefined voices sorted by name followed by file voices
// in scan order (filename-sorted). The result is a snapshot: a refresh that
// starts after this call returns does not affect the returned slice.
func (r *Registry) AllVoices() []VoiceInfo {
	predefined := r.PredefinedVoices()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(predefined, r.fileVoices...)
}

// PredefinedVoices returns the predefined voices sorted by name. The slice is
// freshly built on every call.
func (r *Registry) PredefinedVoices() []VoiceInfo {
	names := make([]string, 0, len(r.predefined))
	for name := range r.predefined {
		names = append(names, name)
	}
	sort.Strings(names)

	voices := make([]VoiceInfo, 0, len(names))
	for _, name := range names {
		voices = append(voices, VoiceInfo{Name: name, Source: SourcePredefined})
	}
	return voices
}

// FileVoices returns a copy of the current file-voice list in scan order.
func (r *Registry) FileVoices() []VoiceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]VoiceInfo(nil), r.fileVoices...)
}

// PredefinedCount returns the number of predefined voices.
func (r *Registry) PredefinedCount() int {
	return len(r.predefined)
}

// FileCount returns the number of file voices found by the most recent
// refresh.
func (r *Registry) FileCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fileVoices)
}

// TotalCount returns the combined number of predefined and file voices.
func (r *Registry) TotalCount() int {
	return r.PredefinedCount() + r.FileCount()
}
