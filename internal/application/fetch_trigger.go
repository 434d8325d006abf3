package application

import (
	"context"
	"sync"
	"time"

	"bridgequote/internal/domain/entity"
	"bridgequote/internal/metrics"

	"go.uber.org/zap"
)

// TriggerState is the debounce state of a FetchTrigger.
type TriggerState int

const (
	TriggerIdle TriggerState = iota
	TriggerPending
	TriggerFetching
)

func (s TriggerState) String() string {
	switch s {
	case TriggerPending:
		return "pending"
	case TriggerFetching:
		return "fetching"
	default:
		return "idle"
	}
}

// QuoteFetcher issues one quote request for a settled selection.
type QuoteFetcher func(ctx context.Context, selection entity.SelectionState) ([]entity.QuoteRoute, error)

// FetchResult is what a FetchTrigger publishes: routes for a settled selection,
// or an empty set when the selection became invalid or the fetch failed.
type FetchResult struct {
	Seq       uint64
	Selection entity.SelectionState
	Routes    []entity.QuoteRoute
	Err       error
	Cleared   bool
}

// FetchTrigger debounces selection changes into quote fetches.
//
// Only the most recently armed timer may fire. Every published result carries
// a sequence number; a result is published only if no newer request or clear
// has been issued since, so a late response never overwrites newer state.
type FetchTrigger struct {
	delay   time.Duration
	fetch   QuoteFetcher
	publish func(FetchResult)
	baseCtx context.Context
	logger  *zap.Logger

	mu          sync.Mutex
	state       TriggerState
	selection   entity.SelectionState
	timer       *time.Timer
	epoch       uint64
	seq         uint64
	cancelFetch context.CancelFunc
	closed      bool

	pubMu         sync.Mutex
	lastPublished uint64
}

// NewFetchTrigger creates an idle trigger. publish is called from timer
// goroutines and must not call back into the trigger.
func NewFetchTrigger(
	ctx context.Context,
	delay time.Duration,
	fetch QuoteFetcher,
	publish func(FetchResult),
	logger *zap.Logger,
) *FetchTrigger {
	return &FetchTrigger{
		delay:   delay,
		fetch:   fetch,
		publish: publish,
		baseCtx: ctx,
		logger:  logger.Named("FetchTrigger"),
	}
}

// Update feeds a new selection. A valid selection (re)arms the debounce timer;
// an invalid one cancels any pending or in-flight work and publishes an empty result.
func (t *FetchTrigger) Update(selection entity.SelectionState) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	prev := t.state
	t.selection = selection.Clone()
	t.stopLocked()

	if !selection.Valid() {
		t.state = TriggerIdle
		t.seq++
		seq := t.seq
		t.mu.Unlock()

		if prev != TriggerIdle {
			metrics.TriggerCancels.Inc()
		}
		t.logger.Debug("Selection invalid, clearing results",
			zap.Stringer("previousState", prev),
			zap.Uint64("seq", seq),
		)
		t.emit(FetchResult{Seq: seq, Selection: selection.Clone(), Routes: []entity.QuoteRoute{}, Cleared: true})
		return
	}

	epoch := t.epoch
	t.state = TriggerPending
	t.timer = time.AfterFunc(t.delay, func() { t.fire(epoch) })
	t.mu.Unlock()

	metrics.TriggerArms.Inc()
	t.logger.Debug("Debounce timer armed",
		zap.Stringer("previousState", prev),
		zap.Duration("delay", t.delay),
	)
}

// State returns the current debounce state.
func (t *FetchTrigger) State() TriggerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Close stops the timer, cancels any in-flight fetch and ignores further updates.
func (t *FetchTrigger) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.seq++
	t.state = TriggerIdle
	t.closed = true
}

// stopLocked invalidates the armed timer and any in-flight fetch.
func (t *FetchTrigger) stopLocked() {
	t.epoch++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.cancelFetch != nil {
		t.cancelFetch()
		t.cancelFetch = nil
	}
}

func (t *FetchTrigger) fire(epoch uint64) {
	t.mu.Lock()
	if epoch != t.epoch || t.state != TriggerPending {
		t.mu.Unlock()
		return
	}
	t.state = TriggerFetching
	t.timer = nil
	t.seq++
	seq := t.seq
	snapshot := t.selection.Clone()
	ctx, cancel := context.WithCancel(t.baseCtx)
	t.cancelFetch = cancel
	t.mu.Unlock()

	t.logger.Debug("Fetching quotes", zap.Uint64("seq", seq))
	start := time.Now()
	routes, err := t.fetch(ctx, snapshot)
	cancel()
	metrics.QuoteFetchDuration.Observe(time.Since(start).Seconds())

	t.mu.Lock()
	if seq != t.seq || t.state != TriggerFetching {
		t.mu.Unlock()
		metrics.QuoteFetches.WithLabelValues(metrics.OutcomeStale).Inc()
		t.logger.Debug("Discarding stale quote response", zap.Uint64("seq", seq))
		return
	}
	t.state = TriggerIdle
	t.cancelFetch = nil
	t.mu.Unlock()

	switch {
	case err != nil:
		metrics.QuoteFetches.WithLabelValues(metrics.OutcomeError).Inc()
		t.logger.Error("Quote fetch failed, publishing empty result", zap.Uint64("seq", seq), zap.Error(err))
		routes = []entity.QuoteRoute{}
	case len(routes) == 0:
		metrics.QuoteFetches.WithLabelValues(metrics.OutcomeEmpty).Inc()
		routes = []entity.QuoteRoute{}
	default:
		metrics.QuoteFetches.WithLabelValues(metrics.OutcomeSuccess).Inc()
		metrics.QuoteRoutesReturned.Observe(float64(len(routes)))
	}

	t.emit(FetchResult{Seq: seq, Selection: snapshot, Routes: routes, Err: err})
}

// emit publishes results in sequence order, dropping any older than the last published one.
func (t *FetchTrigger) emit(res FetchResult) {
	t.pubMu.Lock()
	defer t.pubMu.Unlock()
	if res.Seq < t.lastPublished {
		metrics.QuoteFetches.WithLabelValues(metrics.OutcomeStale).Inc()
		return
	}
	t.lastPublished = res.Seq
	t.publish(res)
}
