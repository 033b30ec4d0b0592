// Package pkglog configures the process-wide slog logger.
//
// Records are JSON with "ts", "severity" and a short "file" source. Each one
// carries the service name and, inside a request, the correlation id set by
// the router.
package pkglog
