// Package panel owns the line-history pipeline: it reacts to line
// selections, fetches the line's version records, runs them through
// normalization, sequencing and change detection, and hands exactly
// one ViewModel per rebuild to the configured renderer.
package panel

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/scripta-tools/linehistory/internal/core/extract"
	"github.com/scripta-tools/linehistory/internal/core/history"
	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/data/events"
	"github.com/scripta-tools/linehistory/internal/data/fetch"
	"github.com/scripta-tools/linehistory/internal/presentation/formatter"
	"github.com/scripta-tools/linehistory/internal/util"
)

var errNoFetcher = errors.New("panel: no history fetcher configured")

// State is the panel's lifecycle state.
type State int

const (
	// StateEmpty means no line has been selected yet.
	StateEmpty State = iota
	// StateLoading means a history fetch is in flight.
	StateLoading
	// StateReady means a ViewModel is available.
	StateReady
)

// Panel is one component instance. Loading and Ready both accept a
// new selection; a newer selection supersedes any in-flight fetch,
// whose result is discarded when it eventually settles
// (last-selection-wins).
type Panel struct {
	fetcher  fetch.Fetcher
	renderer formatter.Renderer
	hostCtx  model.Context

	mu        sync.Mutex
	state     State
	currentID string
	token     string
	cancel    context.CancelFunc
	view      model.ViewModel
}

// New creates a panel in the empty state.
func New(fetcher fetch.Fetcher, renderer formatter.Renderer, hostCtx model.Context) *Panel {
	return &Panel{
		fetcher:  fetcher,
		renderer: renderer,
		hostCtx:  hostCtx,
		view:     model.ViewModel{Empty: true, Versions: []model.AnnotatedVersion{}},
	}
}

// Attach subscribes the panel to a host event source. Line-selected
// and line-updated notifications both restart the pipeline with the
// notification's payload as the new current line.
func (p *Panel) Attach(source events.Source) {
	source.Subscribe(func(record model.RawRecord) {
		p.Select(record)
	})
}

// Select makes the record the new current line and rebuilds the view
// asynchronously. It is the manual trigger surface: calling it
// directly behaves identically to receiving the record from an event
// source. A nil record clears the panel.
func (p *Panel) Select(record model.RawRecord) {
	if record == nil {
		p.Clear()
		return
	}
	ctx, token := p.begin(context.Background(), record)
	go p.load(ctx, token, record)
}

// SelectSync runs the same pipeline to completion on the caller's
// goroutine. Fetch failures degrade to a single-entry history and are
// never returned; the only error is context cancellation before the
// pipeline settles.
func (p *Panel) SelectSync(ctx context.Context, record model.RawRecord) error {
	if record == nil {
		p.Clear()
		return nil
	}
	loadCtx, token := p.begin(ctx, record)
	p.load(loadCtx, token, record)
	return ctx.Err()
}

// Clear drops the current line, cancels any in-flight fetch and
// renders the empty placeholder view.
func (p *Panel) Clear() {
	p.mu.Lock()
	p.release()
	p.token = ""
	p.currentID = ""
	p.state = StateEmpty
	p.view = model.ViewModel{Empty: true, Versions: []model.AnnotatedVersion{}}
	view := p.view
	renderer := p.renderer
	p.mu.Unlock()

	p.render(renderer, view)
}

// State returns the panel's lifecycle state.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// CurrentLineID returns the identifier of the selected line, or ""
// when the panel is empty or the record carries no identifier.
func (p *Panel) CurrentLineID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentID
}

// View returns the most recently built ViewModel.
func (p *Panel) View() model.ViewModel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view
}

// begin installs the record as the current line and opens a fresh
// fetch scope. Any previous in-flight fetch is released here, on the
// superseded path, so exactly one fetch is ever live.
func (p *Panel) begin(parent context.Context, record model.RawRecord) (context.Context, string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.release()

	ctx, cancel := context.WithCancel(parent)
	token := uuid.NewString()

	p.cancel = cancel
	p.token = token
	p.currentID = extract.ID(record)
	p.state = StateLoading

	return ctx, token
}

// release cancels and forgets the in-flight fetch, if any. Callers
// must hold p.mu.
func (p *Panel) release() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// load fetches the line's history and, if the selection is still
// current, rebuilds and renders the view.
func (p *Panel) load(ctx context.Context, token string, record model.RawRecord) {
	lineID := extract.ID(record)

	records, err := p.fetchHistory(ctx, lineID)

	p.mu.Lock()
	if token != p.token {
		// A newer selection arrived while this fetch was in flight.
		p.mu.Unlock()
		util.LogDebugf("Discarding stale history result for line %q", lineID)
		return
	}
	p.release()

	if err != nil {
		// Degrade to the current line as a one-element history.
		util.LogWarnf("History fetch failed for line %q, falling back to current record: %v", lineID, err)
		records = []model.RawRecord{record}
	}

	ordered := history.Sequence(history.Normalize(records))
	view := history.Build(record, ordered, p.hostCtx)

	p.view = view
	p.state = StateReady
	renderer := p.renderer
	p.mu.Unlock()

	p.render(renderer, view)
}

func (p *Panel) fetchHistory(ctx context.Context, lineID string) ([]model.RawRecord, error) {
	if p.fetcher == nil {
		return nil, errNoFetcher
	}
	return p.fetcher.FetchHistory(ctx, lineID)
}

// render hands the view to the renderer. Render failures are
// diagnostics only; the selection handler never propagates them.
func (p *Panel) render(renderer formatter.Renderer, view model.ViewModel) {
	if renderer == nil {
		return
	}
	if err := renderer.Render(view); err != nil {
		util.LogWarnf("Renderer failed: %v", err)
	}
}
