// Package integrity provides health checks for pricing models and the
// infrastructure they are stored in.
//
// # Checks Provided
//
//   - Model: Cross-record checks on a pricing model (duplicate ids, credit schema
//     references, item references, duplicate item features, multiple flat prices).
//   - Server: Validates that the submissions table has the expected columns.
//   - Storage: Verifies the export bucket exists.
//
// # HTTP Endpoints
//
//   - GET  /integrity          : Runs the server and storage checks.
//   - GET  /integrity/server   : Runs the server schema check.
//   - GET  /integrity/storage  : Runs the storage check.
//   - POST /integrity/model    : Checks a model sent in the body.
//   - GET  /integrity/:session : Checks the current model of a session.
package integrity
