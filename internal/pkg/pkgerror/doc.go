// Package pkgerror defines the structured error returned by use cases and the
// sentinel errors stores report.
//
// Stores return ErrNotFound for unknown records. Use cases translate it, and
// every other failure, into an *Error whose Code decides the HTTP status the
// router writes.
package pkgerror
