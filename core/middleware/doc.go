// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: assigns every request a unique id (or reuses X-Ray-ID), stores it in
//     the context for logger.WithRayID and echoes it in the response headers.
//
// Request metrics live in core/metrics.
package middleware
