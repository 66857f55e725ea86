package reconcile

import (
	"errors"
	"sync"

	"pricing-modeller/core/pricing"

	"go.uber.org/zap"
)

// ErrStreamInProgress is returned when a manual edit arrives while a delta
// stream is still being applied.
var ErrStreamInProgress = errors.New("a model stream is in progress")

// Listener is notified after every change to the authoritative model.
// Listeners run while the engine is locked and must not call back into it.
type Listener func(model pricing.PricingModel, streaming bool)

// Engine owns one authoritative pricing model and applies deltas, final
// snapshots and manual edits to it in call order.
type Engine struct {
	mu        sync.Mutex
	current   pricing.PricingModel
	streaming bool
	listeners []Listener
	log       *zap.Logger
}

// NewEngine creates an engine holding initial. A nil logger disables logging.
func NewEngine(initial pricing.PricingModel, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{current: normalize(initial.Clone()), log: log}
}

// OnChange registers a listener for model changes.
func (e *Engine) OnChange(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// ApplyDelta merges a streamed delta into the model and marks the engine as
// streaming. It never fails; records that do not validate are left out.
func (e *Engine) ApplyDelta(d Delta) Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.streaming = true
	merged, sum := Merge(e.current, d)
	if sum.Skipped {
		e.log.Debug("Ignoring incomplete delta")
		return sum
	}

	e.current = merged
	e.log.Debug("Merged delta",
		zap.Int("features_added", sum.FeaturesAdded),
		zap.Int("features_updated", sum.FeaturesUpdated),
		zap.Int("products_added", sum.ProductsAdded),
		zap.Int("products_updated", sum.ProductsUpdated),
		zap.Int("items_added", sum.ItemsAdded),
		zap.Int("records_dropped", sum.RecordsDropped),
	)
	e.notify()
	return sum
}

// ApplyRaw decodes raw JSON as a delta and applies it. Malformed JSON is
// ignored as a transient partial-data error, reported through ok.
func (e *Engine) ApplyRaw(raw []byte) (sum Summary, ok bool) {
	d, err := DecodeDelta(raw)
	if err != nil {
		e.log.Debug("Ignoring malformed delta", zap.Error(err))
		e.mu.Lock()
		e.streaming = true
		e.mu.Unlock()
		return Summary{Skipped: true}, false
	}
	return e.ApplyDelta(d), true
}

// Finalize replaces the model with the final snapshot of a stream and ends
// the stream.
func (e *Engine) Finalize(final pricing.PricingModel) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = normalize(final.Clone())
	e.streaming = false
	e.log.Debug("Finalized model",
		zap.Int("features", len(e.current.Features)),
		zap.Int("products", len(e.current.Products)),
	)
	e.notify()
}

// Abort ends the current stream, keeping the model at its last merged state.
func (e *Engine) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.streaming {
		return
	}
	e.streaming = false
	e.log.Debug("Stream aborted")
	e.notify()
}

// Reset replaces the model with the empty model and ends any stream.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = pricing.Empty()
	e.streaming = false
	e.notify()
}

// Edit replaces the model with a manually edited JSON document. A document
// that does not parse or validate yields a *pricing.ParseError and leaves the
// model unchanged.
func (e *Engine) Edit(raw []byte) error {
	e.mu.Lock()
	streaming := e.streaming
	e.mu.Unlock()
	if streaming {
		return ErrStreamInProgress
	}

	m, err := pricing.Parse(raw)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streaming {
		return ErrStreamInProgress
	}
	e.current = normalize(m)
	e.notify()
	return nil
}

// Snapshot returns a deep copy of the current model.
func (e *Engine) Snapshot() pricing.PricingModel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Clone()
}

// Streaming reports whether a stream is in flight.
func (e *Engine) Streaming() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.streaming
}

func (e *Engine) notify() {
	for _, l := range e.listeners {
		l(e.current.Clone(), e.streaming)
	}
}

func normalize(m pricing.PricingModel) pricing.PricingModel {
	if m.Features == nil {
		m.Features = []pricing.Feature{}
	}
	if m.Products == nil {
		m.Products = []pricing.Product{}
	}
	for i := range m.Products {
		if m.Products[i].Items == nil {
			m.Products[i].Items = []pricing.ProductItem{}
		}
	}
	return m
}
