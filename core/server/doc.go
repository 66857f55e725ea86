// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// defines the port, the request body limit (pricing models travel whole in
// request bodies), and the timeouts applied to delta streams.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by cmd/start to configure the Fiber application.
package server
