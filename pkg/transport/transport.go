// Copyright © 2021 One Concern

// Package transport defines the remote call boundary of the client.
//
// The core is wire-format agnostic: it names an operation, supplies typed
// request and response records, and requires only that server faults be
// distinguishable from transport failures and expose a machine-checkable
// code. Concrete adapters (see pkg/soap) live behind this interface.
package transport

import (
	"context"
	"fmt"
)

// Transport performs one named remote operation against an endpoint.
//
// headers are XML-marshalable header records attached to the call (session
// token and the like). in is the typed request record, out the typed response
// record to decode into; out may be nil when the caller discards the result.
// A fault reported by the server is returned as *Fault; any other error is a
// transport-level failure.
type Transport interface {
	Call(ctx context.Context, endpoint, operation string, headers []interface{}, in, out interface{}) error
}

// Fault is a structured error reported by the server
type Fault struct {
	// Code is the machine-checkable fault code, stripped of any namespace
	// prefix (e.g. "INVALID_SESSION_ID")
	Code string

	// Message is the human-readable fault string
	Message string
}

// Error renders the fault as code and message
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}
