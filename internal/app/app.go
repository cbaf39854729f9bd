package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"tangutlex/internal/core/config"
	"tangutlex/internal/core/errors"
	"tangutlex/internal/data/history"
	"tangutlex/internal/lexicon"
	"tangutlex/internal/render"
	"tangutlex/internal/shared/observability"
	"tangutlex/internal/watcher"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Update is sent to the update handler after every dataset (re)load.
type Update struct {
	Summary  lexicon.Summary
	LoadedAt time.Time
	Err      error
}

type queryLog interface {
	Record(ctx context.Context, q history.Query) (history.Query, error)
	Recent(ctx context.Context, limit int) ([]history.Query, error)
	Close() error
}

// loaded pairs a collection with the summary it was built with.
type loaded struct {
	collection *lexicon.Collection
	summary    lexicon.Summary
	at         time.Time
}

type App struct {
	Config    *config.Config
	SessionID string

	current atomic.Pointer[loaded]
	history queryLog
	watcher *watcher.Watcher

	updateMu sync.RWMutex
	onUpdate func(Update)
}

// New loads the configured dataset and opens the query history when one is
// configured. A dataset that cannot be parsed fails startup.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config:    cfg,
		SessionID: uuid.NewString(),
	}

	if err := a.Load(ctx); err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(cfg.History.Path); path != "" {
		store, err := history.Open(path)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "open query history"), errors.CtxPath, path)
		}
		a.history = store
	}

	return a, nil
}

// NewWithCollection wraps an already built collection. Used by one-shot
// callers and tests that do not read a dataset file.
func NewWithCollection(cfg *config.Config, c *lexicon.Collection, summary lexicon.Summary) *App {
	a := &App{Config: cfg, SessionID: uuid.NewString()}
	a.current.Store(&loaded{collection: c, summary: summary, at: time.Now()})
	return a
}

// Load reads the dataset and swaps it in. The previous collection stays
// active when loading fails.
func (a *App) Load(ctx context.Context) error {
	_, span := observability.Tracer.Start(ctx, "app.Load", trace.WithAttributes(
		attribute.String("dataset.path", a.Config.Dataset.Path),
	))
	defer span.End()

	start := time.Now()
	c, summary, err := lexicon.LoadFileAs(a.Config.Dataset.Path, a.Config.DatasetFormat(), a.Config.LookupOptions())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load dataset")
		return err
	}
	observability.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	observability.DatasetEntries.Set(float64(summary.Total))
	observability.DatasetMissingPhonetics.Set(float64(summary.MissingPhonetics))
	observability.DatasetSkippedRecords.Set(float64(summary.Skipped))
	span.SetAttributes(
		attribute.Int("dataset.entries", summary.Total),
		attribute.Int("dataset.skipped", summary.Skipped),
	)

	a.current.Store(&loaded{collection: c, summary: summary, at: time.Now()})
	return nil
}

// Collection returns the active collection.
func (a *App) Collection() *lexicon.Collection {
	if cur := a.current.Load(); cur != nil {
		return cur.collection
	}
	return nil
}

// Summary returns the load summary of the active collection.
func (a *App) Summary() lexicon.Summary {
	if cur := a.current.Load(); cur != nil {
		return cur.summary
	}
	return lexicon.Summary{}
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

func (a *App) CurrentUpdate() Update {
	cur := a.current.Load()
	if cur == nil {
		return Update{}
	}
	return Update{Summary: cur.summary, LoadedAt: cur.at}
}

func (a *App) emitUpdate(update Update) {
	a.updateMu.RLock()
	handler := a.onUpdate
	a.updateMu.RUnlock()
	if handler != nil {
		handler(update)
	}
}

// Result is the outcome of one query in either direction.
type Result struct {
	Direction lexicon.Direction
	Query     string
	Terms     []lexicon.TermResult
	Chars     []lexicon.CharResult
	Phrase    lexicon.Phrase
	// MissingPhonetic is the placeholder of the collection that answered.
	MissingPhonetic string
}

// Segments is the number of terms or characters in the query.
func (r Result) Segments() int {
	if r.Direction == lexicon.EnglishToScript {
		return len(r.Terms)
	}
	return len(r.Chars)
}

// Unmatched counts terms or characters without any entry.
func (r Result) Unmatched() int {
	n := 0
	for _, t := range r.Terms {
		if !t.Found() {
			n++
		}
	}
	for _, c := range r.Chars {
		if !c.Known() {
			n++
		}
	}
	return n
}

// Render formats the result as a text listing.
func (r Result) Render(style render.Style) string {
	if r.Direction == lexicon.EnglishToScript {
		return render.EnglishToScript(r.Terms, r.Phrase, style)
	}
	return render.ScriptToEnglish(r.Chars, r.Phrase, r.MissingPhonetic, style)
}

// Translate answers query in the given direction. Unmatched terms or
// characters are part of the result, not errors.
func (a *App) Translate(ctx context.Context, dir lexicon.Direction, query string) (Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Translate", trace.WithAttributes(
		attribute.String("direction", dir.String()),
	))
	defer span.End()

	c := a.Collection()
	if c == nil {
		return Result{}, errors.New(errors.CodeInternal, "no dataset loaded")
	}

	start := time.Now()
	result := Result{Direction: dir, Query: query, MissingPhonetic: c.MissingPhonetic()}
	switch dir {
	case lexicon.EnglishToScript:
		result.Terms = c.LookupByMeaning(query)
		result.Phrase = c.ComposeMeaning(result.Terms)
	case lexicon.ScriptToEnglish:
		result.Chars = c.LookupByCharacter(query)
		result.Phrase = c.Combine(result.Chars)
	default:
		err := errors.New(errors.CodeValidationError, fmt.Sprintf("unknown lookup direction %d", dir))
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	observability.LookupDuration.WithLabelValues(dir.String()).Observe(time.Since(start).Seconds())
	observability.LookupsTotal.WithLabelValues(dir.String()).Inc()
	unmatched := result.Unmatched()
	observability.LookupSegmentsTotal.WithLabelValues(dir.String(), "found").Add(float64(result.Segments() - unmatched))
	observability.LookupSegmentsTotal.WithLabelValues(dir.String(), "missing").Add(float64(unmatched))
	span.SetAttributes(
		attribute.Int("query.segments", result.Segments()),
		attribute.Int("query.unmatched", unmatched),
	)

	if a.history != nil {
		if _, err := a.history.Record(ctx, history.Query{
			SessionID: a.SessionID,
			Direction: dir.String(),
			Input:     query,
			Segments:  result.Segments(),
			Unmatched: unmatched,
		}); err != nil {
			slog.Warn("failed to record query history", "error", err)
		}
	}

	return result, nil
}

// RecentQueries returns the newest logged queries, or nil when history is off.
func (a *App) RecentQueries(ctx context.Context) ([]history.Query, error) {
	if a.history == nil {
		return nil, nil
	}
	return a.history.Recent(ctx, a.Config.History.Limit)
}

// StartWatcher reloads the dataset whenever its file changes.
func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, nil, a.HandleChanges)
	if err != nil {
		return err
	}
	if err := w.Watch([]string{a.Config.Dataset.Path}); err != nil {
		_ = w.Close()
		return err
	}
	a.watcher = w
	return nil
}

// HandleChanges reloads the dataset after a file change and notifies the
// update handler either way.
func (a *App) HandleChanges(paths []string) {
	slog.Info("dataset changed, reloading", "paths", paths)
	if err := a.Load(context.Background()); err != nil {
		observability.DatasetReloadsTotal.WithLabelValues("error").Inc()
		slog.Error("dataset reload failed, keeping previous collection", "error", err)
		update := a.CurrentUpdate()
		update.Err = err
		a.emitUpdate(update)
		return
	}
	observability.DatasetReloadsTotal.WithLabelValues("ok").Inc()
	summary := a.Summary()
	slog.Info("dataset reloaded", "entries", summary.Total, "missing_phonetics", summary.MissingPhonetics, "skipped", summary.Skipped)
	a.emitUpdate(a.CurrentUpdate())
}

// Close stops the watcher, closes the history and writes the metrics
// textfile when one is configured.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.watcher != nil {
		keep(a.watcher.Close())
	}
	if a.history != nil {
		keep(a.history.Close())
	}
	if path := strings.TrimSpace(a.Config.Observability.MetricsFile); path != "" {
		keep(observability.WriteTextfile(path))
	}
	keep(ctx.Err())
	return firstErr
}
