// Package logger provides a structured logging facility based on Zap.
//
// Level selects the base configuration (development at debug, production otherwise)
// and Format selects console or json encoding.
//
// # Context Awareness
//
// WithRayID extracts the request id stored by the rayid middleware from a Fiber
// context and attaches it to the log entry, so every line written while serving a
// request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Scan failed", zap.Error(err))
package logger
