package reconcile

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"pricing-modeller/core/pricing"

	"go.uber.org/zap"
)

// EventType identifies a stream envelope.
type EventType string

const (
	// EventDelta carries a partial model snapshot.
	EventDelta EventType = "delta"
	// EventDone carries the final model and ends the stream.
	EventDone EventType = "done"
	// EventAbort ends the stream without a final model.
	EventAbort EventType = "abort"
)

// maxEventSize bounds a single NDJSON line.
const maxEventSize = 4 << 20

// Event is one envelope of a model stream.
type Event struct {
	Type   EventType       `json:"type"`
	Object json.RawMessage `json:"object,omitempty"`
}

// StreamResult describes how a stream was consumed.
type StreamResult struct {
	// Deltas counts deltas that changed the model.
	Deltas int `json:"deltas"`

	// Ignored counts envelopes that were skipped as transient or unknown.
	Ignored int `json:"ignored"`

	// Finalized is set when the stream ended with a final model.
	Finalized bool `json:"finalized"`

	// Aborted is set when the stream ended without a final model.
	Aborted bool `json:"aborted"`
}

// Consume applies events in arrival order until a done or abort event, the
// channel closing, or ctx being cancelled. A stream that ends without a done
// event leaves the model at its last merged state.
func (e *Engine) Consume(ctx context.Context, events <-chan Event) (StreamResult, error) {
	var res StreamResult
	for {
		select {
		case <-ctx.Done():
			e.Abort()
			res.Aborted = true
			return res, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				e.Abort()
				res.Aborted = true
				return res, nil
			}
			stop, err := e.handle(ev, &res)
			if err != nil || stop {
				return res, err
			}
		}
	}
}

// ReplayNDJSON reads newline-delimited envelopes from r and applies them to e.
func ReplayNDJSON(ctx context.Context, e *Engine, r io.Reader) (StreamResult, error) {
	var res StreamResult
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			e.Abort()
			res.Aborted = true
			return res, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			e.log.Debug("Skipping malformed stream envelope", zap.Error(err))
			res.Ignored++
			continue
		}
		stop, err := e.handle(ev, &res)
		if err != nil || stop {
			return res, err
		}
	}
	if err := scanner.Err(); err != nil {
		e.Abort()
		res.Aborted = true
		return res, fmt.Errorf("failed to read stream: %w", err)
	}

	e.Abort()
	res.Aborted = true
	return res, nil
}

func (e *Engine) handle(ev Event, res *StreamResult) (bool, error) {
	switch ev.Type {
	case EventDelta:
		sum, ok := e.ApplyRaw(ev.Object)
		if !ok || sum.Skipped {
			res.Ignored++
			return false, nil
		}
		res.Deltas++
		return false, nil

	case EventDone:
		final, err := pricing.Decode(ev.Object)
		if err != nil {
			e.Abort()
			res.Aborted = true
			return true, &pricing.ParseError{Err: err}
		}
		e.Finalize(final)
		res.Finalized = true
		return true, nil

	case EventAbort:
		e.Abort()
		res.Aborted = true
		return true, nil

	default:
		e.log.Debug("Skipping unknown stream event", zap.String("type", string(ev.Type)))
		res.Ignored++
		return false, nil
	}
}
