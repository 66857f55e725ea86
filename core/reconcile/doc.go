// Package reconcile folds a stream of partial pricing-model snapshots into an
// authoritative model without losing known data or admitting invalid records.
//
// # Architecture
//
// The package consists of four parts:
//
// 1. Merge: a pure function that coalesces one Delta into a previous model.
//    Features and products are matched by id, items by feature id (price-only
//    items by position). A present candidate value wins; an absent, null or
//    unrecognised one leaves the previous value in place. New features need an
//    id and a valid type, new products a non-blank id, and items that fail
//    validation are excluded.
//
// 2. Engine: owns one model. ApplyDelta merges while a stream is in flight,
//    Finalize replaces the model with the final snapshot, Edit applies a
//    manually edited document, and Reset empties the model. Operations are
//    serialised and Snapshot hands out deep copies.
//
// 3. Stream: Consume and ReplayNDJSON drive an engine from delta/done/abort
//    envelopes in arrival order.
//
// 4. Registry: one engine per session, restored from a DraftStore on demand
//    with stampede protection, evicted when idle. Drafts are saved whenever a
//    session's model settles outside a stream.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(pricing.Empty(), log)
//	for _, raw := range partials {
//	    engine.ApplyRaw(raw)
//	}
//	engine.Finalize(final)
//
//	view := engine.Snapshot()
package reconcile
