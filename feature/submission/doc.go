// Package submission stores finished pricing models.
//
// A submission is either the current model of a live session or a model sent
// inline. Features that fail validation are removed, the model gets a ULID
// and is written to the chat_results table as JSON. When object storage is
// enabled, the same JSON is exported to <prefix>/<id>.json; a failed export is
// logged and does not fail the submission.
//
// # HTTP Endpoints
//
//   - POST /submissions     : Stores {"session_id": ...} or {"pricing_model": ...}.
//   - GET  /submissions/:id : Returns a stored submission.
package submission
