// Package pkgrouter wraps httprouter with the JSON envelope and middleware the
// API shares.
//
// Handlers return a payload or an error. Payloads are written as
// {"message","data","meta"}; errors are mapped through pkgerror to a status
// code. Every route runs behind panic recovery, correlation id propagation and
// request logging.
package pkgrouter
