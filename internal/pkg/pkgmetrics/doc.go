// Package pkgmetrics exposes Prometheus metrics for the application.
//
// It owns a dedicated registry so tests can create isolated instances, offers
// an HTTP middleware that records request counts and latency per matched
// route, and implements the domain counters used by the sheet module.
package pkgmetrics
