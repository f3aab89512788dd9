package core

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oneconcern/metasync/pkg/session"
)

// fakeGateway replies to successive Invoke calls from a script, recording
// every operation and request it sees
type step struct {
	op     string
	result interface{}
	err    error
}

type invocation struct {
	svc session.Service
	op  string
	in  interface{}
}

type fakeGateway struct {
	t        *testing.T
	script   []step
	recorded []invocation
}

func (f *fakeGateway) Invoke(_ context.Context, svc session.Service, op string, in, out interface{}) error {
	require.Less(f.t, len(f.recorded), len(f.script), "unexpected call to %s", op)
	s := f.script[len(f.recorded)]
	f.recorded = append(f.recorded, invocation{svc: svc, op: op, in: in})
	require.Equal(f.t, s.op, op)
	if s.err != nil {
		return s.err
	}
	if s.result != nil && out != nil {
		reflect.ValueOf(out).Elem().Set(reflect.ValueOf(s.result))
	}
	return nil
}

func (f *fakeGateway) exhausted() bool {
	return len(f.recorded) == len(f.script)
}
