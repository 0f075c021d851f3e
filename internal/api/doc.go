// Package api talks to the fleet-management backend over JSON/HTTP.
//
// # Overview
//
// The package is split into two layers. Gateway is the transport chokepoint:
// every request the console makes passes through Gateway.Send, which attaches
// the bearer token and a request id, raises the process-wide loading signal
// for the duration of the call, and translates error responses into
// user-facing notifications. Client sits on top and exposes the typed
// per-entity operations (list, get, create, update, delete) for the three
// entity families the console manages.
//
// # Error handling
//
// The backend reports failures as a JSON envelope carrying a machine error
// code. The gateway owns the code-to-message table: a known code maps to a
// specific human-facing message, anything else falls back to the generic
// one, and in both cases the notification is emitted centrally before the
// call returns. Callers therefore never render gateway errors themselves;
// the *APIError they receive exists purely for flow control, most notably so
// delete paths can treat a 404 as an already-completed deletion.
//
// # Loading signal
//
// The in-flight counter is incremented before a request is written and
// decremented after the response is consumed, on success and failure alike.
// Busy reports whether any call is outstanding; the UI's global progress
// indicator renders directly off it, so a request leaked past its decrement
// would pin the indicator on. A rolling average of recent request latencies
// is kept alongside for the header readout.
//
// # Design rationale
//
// Entity families are identified by the Kind enum and resolved through a
// single lookup table for their endpoint path, payload keys and searchable
// columns. Adding a fourth family means adding one table row, not finding
// every switch that branches on a name string.
//
// The gateway deliberately sets no request timeout and never retries.
// Cancellation belongs to the caller's context, and a retry on a mutation
// could double-apply it.
package api
