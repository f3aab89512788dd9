// Copyright © 2021 One Concern

// Package session owns the authenticated session against the remote API.
//
// The gateway is the only holder of the session token and the per-org
// endpoints; neither is ever exposed to callers. Expiry is server-signaled:
// when a call faults with a session-invalid code the gateway re-authenticates
// exactly once, swaps the stored token under lock, and retries the identical
// call before surfacing any further fault.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/errors"
	"github.com/oneconcern/metasync/pkg/model"
	"github.com/oneconcern/metasync/pkg/session/status"
	"github.com/oneconcern/metasync/pkg/transport"
)

// DefaultLoginEndpoint is the production login URL, completed with the API
// version at login time
const DefaultLoginEndpoint = "https://login.salesforce.com/services/Soap/u/"

// invalidSessionCode is the default fault code signaling an expired token.
// The vendor's fault taxonomy is not fully enumerated, so the match is
// configurable via SessionFaultMatcher.
const invalidSessionCode = "INVALID_SESSION_ID"

// Service selects which per-org endpoint a call goes to
type Service int

const (
	// ServiceMetadata is the metadata (retrieve/deploy/list) endpoint
	ServiceMetadata Service = iota

	// ServiceData is the data (query/CRUD/apex) endpoint
	ServiceData
)

// Credentials authenticate the login operation
type Credentials struct {
	Username string
	Password string

	// SecurityToken is appended to the password when the org requires one
	SecurityToken string
}

// Gateway performs authenticated calls with the session-renewal policy
type Gateway struct {
	t              transport.Transport
	creds          Credentials
	loginEndpoint  string
	apiVersion     string
	l              *zap.Logger
	isSessionFault func(*transport.Fault) bool

	mu       sync.Mutex
	token    string
	dataURL  string
	metaURL  string
	loggedIn bool
}

// Option configures a gateway
type Option func(*Gateway)

// Logger injects a logging facility into the gateway
func Logger(l *zap.Logger) Option {
	return func(g *Gateway) {
		g.l = l
	}
}

// APIVersion sets the API version used to build the login endpoint
func APIVersion(v float64) Option {
	return func(g *Gateway) {
		g.apiVersion = model.FormatAPIVersion(v)
	}
}

// LoginEndpoint overrides the login URL (e.g. for sandbox orgs)
func LoginEndpoint(url string) Option {
	return func(g *Gateway) {
		g.loginEndpoint = url
	}
}

// SessionFaultMatcher overrides the policy deciding whether a fault means
// the session token is invalid
func SessionFaultMatcher(match func(*transport.Fault) bool) Option {
	return func(g *Gateway) {
		g.isSessionFault = match
	}
}

// New builds a gateway. No remote call happens until the first Invoke.
func New(t transport.Transport, creds Credentials, opts ...Option) *Gateway {
	g := &Gateway{
		t:             t,
		creds:         creds,
		loginEndpoint: DefaultLoginEndpoint,
		apiVersion:    model.FormatAPIVersion(model.DefaultAPIVersion),
		l:             zap.NewNop(),
		isSessionFault: func(f *transport.Fault) bool {
			return f.Code == invalidSessionCode
		},
	}
	for _, apply := range opts {
		apply(g)
	}
	return g
}

// OperationFault is a fault surfaced from a remote operation, carrying the
// operation name and the server-provided code and message
type OperationFault struct {
	Op      string
	Code    string
	Message string

	cause error
}

// Error message
func (f *OperationFault) Error() string {
	return fmt.Sprintf("operation %s: %s: %s", f.Op, f.Code, f.Message)
}

// Unwrap the underlying fault or sentinel
func (f *OperationFault) Unwrap() error {
	return f.cause
}

// Invoke performs one named operation against the selected service.
//
// A fault matched as session-invalid triggers a single re-authentication and
// one retry of the identical call; any other fault, and any fault on the
// retried call, is surfaced as *OperationFault without further retries.
func (g *Gateway) Invoke(ctx context.Context, svc Service, op string, in, out interface{}) error {
	token, endpoint, err := g.session(ctx, svc)
	if err != nil {
		return err
	}
	callID := ksuid.New().String()
	g.l.Debug("invoke", zap.String("operation", op), zap.String("call_id", callID))

	err = g.t.Call(ctx, endpoint, op, []interface{}{model.SessionHeader{SessionID: token}}, in, out)
	if err == nil {
		return nil
	}
	var fault *transport.Fault
	if !errors.As(err, &fault) {
		return err
	}
	if !g.isSessionFault(fault) {
		return &OperationFault{Op: op, Code: fault.Code, Message: fault.Message, cause: fault}
	}

	g.l.Info("session expired, renewing", zap.String("operation", op), zap.String("call_id", callID))
	if err = g.renew(ctx, token); err != nil {
		return err
	}
	token, endpoint, err = g.session(ctx, svc)
	if err != nil {
		return err
	}
	err = g.t.Call(ctx, endpoint, op, []interface{}{model.SessionHeader{SessionID: token}}, in, out)
	if err == nil {
		return nil
	}
	if errors.As(err, &fault) {
		return &OperationFault{
			Op: op, Code: fault.Code, Message: fault.Message,
			cause: status.ErrRetryExhausted.Wrap(fault),
		}
	}
	return err
}

// session returns the current token and endpoint, logging in first when
// no session exists yet
func (g *Gateway) session(ctx context.Context, svc Service) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.loggedIn {
		if err := g.loginLocked(ctx); err != nil {
			return "", "", err
		}
	}
	if svc == ServiceMetadata {
		return g.token, g.metaURL, nil
	}
	return g.token, g.dataURL, nil
}

// renew replaces the session unless another invoker already did: replacing
// only when the stored token still matches the stale one avoids clobbering
// a fresh token with the result of a concurrent stale retry
func (g *Gateway) renew(ctx context.Context, stale string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.loggedIn && g.token != stale {
		return nil
	}
	return g.loginLocked(ctx)
}

// loginLocked performs the login operation. Callers hold g.mu.
func (g *Gateway) loginLocked(ctx context.Context) error {
	password := g.creds.Password + g.creds.SecurityToken
	var result model.LoginResult
	err := g.t.Call(ctx, g.loginURL(), "login", nil,
		model.LoginRequest{Username: g.creds.Username, Password: password}, &result)
	if err != nil {
		return status.ErrLogin.Wrap(err)
	}
	if result.SessionID == "" {
		return status.ErrLogin.WrapMessage("server returned an empty session id")
	}
	g.token = result.SessionID
	g.dataURL = result.ServerURL
	g.metaURL = result.MetadataServerURL
	g.loggedIn = true
	g.l.Debug("logged in", zap.String("user", g.creds.Username))
	return nil
}

func (g *Gateway) loginURL() string {
	if strings.HasSuffix(g.loginEndpoint, "/") {
		return g.loginEndpoint + g.apiVersion
	}
	return g.loginEndpoint
}
