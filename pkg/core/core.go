// Copyright © 2021 One Concern

// Package core composes the manifest model, the session gateway and the
// async job poller into the client's top-level operations: retrieve and
// deploy orchestration, metadata listing, paged queries and batched record
// operations.
package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/poll"
	"github.com/oneconcern/metasync/pkg/session"
)

// Invoker performs one authenticated named operation. *session.Gateway is
// the production implementation.
type Invoker interface {
	Invoke(ctx context.Context, svc session.Service, op string, in, out interface{}) error
}

var _ Invoker = &session.Gateway{}

type settings struct {
	pollInterval time.Duration
	maxChecks    int
	l            *zap.Logger
}

// Option tunes an orchestrated operation
type Option func(*settings)

// PollInterval sets the sleep duration between job status checks
func PollInterval(d time.Duration) Option {
	return func(s *settings) {
		s.pollInterval = d
	}
}

// MaxPollChecks bounds the number of job status checks (0 means unbounded)
func MaxPollChecks(n int) Option {
	return func(s *settings) {
		s.maxChecks = n
	}
}

// Logger injects a logging facility into core operations
func Logger(l *zap.Logger) Option {
	return func(s *settings) {
		s.l = l
	}
}

func defaultSettings(opts ...Option) settings {
	s := settings{
		pollInterval: poll.DefaultInterval,
		l:            zap.NewNop(),
	}
	for _, apply := range opts {
		apply(&s)
	}
	return s
}

func (s settings) pollOptions() []poll.Option {
	return []poll.Option{
		poll.Interval(s.pollInterval),
		poll.MaxChecks(s.maxChecks),
		poll.Logger(s.l),
	}
}
