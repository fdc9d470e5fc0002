// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines the
// listen address and the toggles for optional endpoints (Swagger UI, Prometheus
// metrics). It is embedded by core/config.
package server
