// Package metrics exposes Prometheus metrics for the HTTP surface and the audit workflow.
//
// Metrics are kept in a private registry. The Fiber middleware records
// http_requests_total and http_request_duration_seconds labelled by method, route
// pattern and status; the audit service records scan outcomes and lifecycle events.
package metrics
