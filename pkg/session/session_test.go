package session

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/metasync/pkg/errors"
	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/session/status"
	"github.com/oneconcern/metasync/pkg/transport"
)

// scripted transport: replies to successive calls in order, recording what
// the gateway sent
type fakeCall struct {
	result interface{}
	err    error
}

type recordedCall struct {
	endpoint string
	op       string
	token    string
}

type fakeTransport struct {
	t        *testing.T
	script   []fakeCall
	recorded []recordedCall
}

func (f *fakeTransport) Call(_ context.Context, endpoint, op string, headers []interface{}, _, out interface{}) error {
	require.Less(f.t, len(f.recorded), len(f.script), "unexpected call to %s", op)
	rec := recordedCall{endpoint: endpoint, op: op}
	for _, h := range headers {
		if sh, ok := h.(model.SessionHeader); ok {
			rec.token = sh.SessionID
		}
	}
	step := f.script[len(f.recorded)]
	f.recorded = append(f.recorded, rec)
	if step.err != nil {
		return step.err
	}
	if step.result != nil && out != nil {
		reflect.ValueOf(out).Elem().Set(reflect.ValueOf(step.result))
	}
	return nil
}

func loginOK(token string) fakeCall {
	return fakeCall{result: model.LoginResult{
		SessionID:         token,
		ServerURL:         "https://org.example.com/u",
		MetadataServerURL: "https://org.example.com/m",
	}}
}

func sessionFault() fakeCall {
	return fakeCall{err: &transport.Fault{Code: "INVALID_SESSION_ID", Message: "Invalid Session ID found"}}
}

func ops(recorded []recordedCall) []string {
	out := make([]string, 0, len(recorded))
	for _, r := range recorded {
		out = append(out, r.op)
	}
	return out
}

func TestInvokeLazyLogin(t *testing.T) {
	ft := &fakeTransport{t: t, script: []fakeCall{
		loginOK("tok-1"),
		{result: model.AsyncResult{ID: "09S", State: "Queued"}},
	}}
	g := New(ft, Credentials{Username: "me", Password: "pw", SecurityToken: "sec"})

	var out model.AsyncResult
	err := g.Invoke(context.Background(), ServiceMetadata, "retrieve", nil, &out)
	require.NoError(t, err)
	require.Equal(t, "09S", out.ID)
	require.Equal(t, []string{"login", "retrieve"}, ops(ft.recorded))
	// authenticated call goes to the metadata endpoint with the fresh token
	assert.Equal(t, "https://org.example.com/m", ft.recorded[1].endpoint)
	assert.Equal(t, "tok-1", ft.recorded[1].token)
}

func TestInvokeDataEndpoint(t *testing.T) {
	ft := &fakeTransport{t: t, script: []fakeCall{
		loginOK("tok-1"),
		{result: model.QueryResult{Done: true}},
	}}
	g := New(ft, Credentials{Username: "me", Password: "pw"})

	var out model.QueryResult
	require.NoError(t, g.Invoke(context.Background(), ServiceData, "query", nil, &out))
	assert.Equal(t, "https://org.example.com/u", ft.recorded[1].endpoint)
}

func TestInvokeRenewsSessionOnce(t *testing.T) {
	ft := &fakeTransport{t: t, script: []fakeCall{
		loginOK("tok-1"),
		sessionFault(),
		loginOK("tok-2"),
		{result: model.AsyncResult{ID: "09S"}},
	}}
	g := New(ft, Credentials{Username: "me", Password: "pw"})

	var out model.AsyncResult
	err := g.Invoke(context.Background(), ServiceMetadata, "retrieve", nil, &out)
	require.NoError(t, err)
	require.Equal(t, "09S", out.ID)
	// exactly one re-authentication, one retried call
	require.Equal(t, []string{"login", "retrieve", "login", "retrieve"}, ops(ft.recorded))
	// the retry carries the renewed token
	assert.Equal(t, "tok-2", ft.recorded[3].token)
}

func TestInvokeOtherFaultNoRetry(t *testing.T) {
	ft := &fakeTransport{t: t, script: []fakeCall{
		loginOK("tok-1"),
		{err: &transport.Fault{Code: "INVALID_TYPE", Message: "no such type"}},
	}}
	g := New(ft, Credentials{Username: "me", Password: "pw"})

	err := g.Invoke(context.Background(), ServiceMetadata, "listMetadata", nil, nil)
	require.Error(t, err)
	require.Equal(t, []string{"login", "listMetadata"}, ops(ft.recorded))

	var fault *OperationFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "listMetadata", fault.Op)
	assert.Equal(t, "INVALID_TYPE", fault.Code)
	assert.False(t, errors.Is(err, status.ErrRetryExhausted))
}

func TestInvokeRetryExhausted(t *testing.T) {
	ft := &fakeTransport{t: t, script: []fakeCall{
		loginOK("tok-1"),
		sessionFault(),
		loginOK("tok-2"),
		sessionFault(),
	}}
	g := New(ft, Credentials{Username: "me", Password: "pw"})

	err := g.Invoke(context.Background(), ServiceMetadata, "deploy", nil, nil)
	require.Error(t, err)
	require.Equal(t, []string{"login", "deploy", "login", "deploy"}, ops(ft.recorded))
	require.True(t, errors.Is(err, status.ErrRetryExhausted))

	var fault *OperationFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "deploy", fault.Op)
}

func TestInvokeLoginFailure(t *testing.T) {
	ft := &fakeTransport{t: t, script: []fakeCall{
		{err: &transport.Fault{Code: "INVALID_LOGIN", Message: "bad credentials"}},
	}}
	g := New(ft, Credentials{Username: "me", Password: "pw"})

	err := g.Invoke(context.Background(), ServiceMetadata, "retrieve", nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, status.ErrLogin))
	require.Equal(t, []string{"login"}, ops(ft.recorded))
}

func TestSessionFaultMatcherOption(t *testing.T) {
	ft := &fakeTransport{t: t, script: []fakeCall{
		loginOK("tok-1"),
		{err: &transport.Fault{Code: "SESSION_TIMED_OUT", Message: "expired"}},
		loginOK("tok-2"),
		{result: model.AsyncResult{ID: "09S"}},
	}}
	g := New(ft, Credentials{Username: "me", Password: "pw"},
		SessionFaultMatcher(func(f *transport.Fault) bool {
			return f.Code == "SESSION_TIMED_OUT"
		}))

	var out model.AsyncResult
	require.NoError(t, g.Invoke(context.Background(), ServiceMetadata, "retrieve", nil, &out))
	require.Equal(t, []string{"login", "retrieve", "login", "retrieve"}, ops(ft.recorded))
}

func TestLoginURL(t *testing.T) {
	g := New(nil, Credentials{}, APIVersion(48.0))
	require.Equal(t, "https://login.salesforce.com/services/Soap/u/48.0", g.loginURL())

	g = New(nil, Credentials{}, LoginEndpoint("https://test.example.com/Soap/u/52.0"))
	require.Equal(t, "https://test.example.com/Soap/u/52.0", g.loginURL())
}
