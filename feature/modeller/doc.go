// Package modeller exposes live pricing-model sessions over HTTP.
//
// Each session owns one reconciliation engine. Streamed partial models are
// merged as they arrive, the final model replaces the accumulated one, and
// the projection layer renders the current model as ordered pricing cards.
//
// # HTTP Endpoints
//
//   - POST   /sessions              : Starts a session.
//   - GET    /sessions/:id/model    : Current model and streaming flag.
//   - PUT    /sessions/:id/model    : Manual edit (422 with invalid_json on bad input, 409 while streaming).
//   - POST   /sessions/:id/deltas   : Merges one partial model.
//   - POST   /sessions/:id/finalize : Replaces the model with the final snapshot.
//   - POST   /sessions/:id/stream   : Applies NDJSON stream envelopes in order.
//   - POST   /sessions/:id/abort    : Ends an open stream, keeping the partial model.
//   - POST   /sessions/:id/reset    : Empties the model.
//   - GET    /sessions/:id/table    : Pricing cards, render failures and credit systems.
//   - DELETE /sessions/:id          : Ends the session and deletes its draft.
package modeller
