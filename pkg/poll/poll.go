// Copyright © 2021 One Concern

// Package poll drives a server-side long-running job to completion.
//
// The poller is a generic state machine over two caller-supplied operations:
// one submission returning a job id, and one status check classifying the
// raw server state. It sleeps between checks, always performs at least one
// check after submission, and never silently retries past a status outside
// the recognized vocabulary.
package poll

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oneconcern/metasync/pkg/poll/status"
)

// DefaultInterval between two status checks
const DefaultInterval = 5 * time.Second

// Job supplies the two operations the poller drives
type Job struct {
	// Start submits the job and returns its server-issued id
	Start func(ctx context.Context) (string, error)

	// Check polls the job once and classifies the reported status
	Check func(ctx context.Context, id string) (Result, error)
}

// Result is one classified status check.
//
// A recognized in-progress status has Terminal false. A recognized success
// has Terminal and Success true and carries the terminal payload. Any other
// status is terminal without success: it likely signals a new server-side
// failure mode and must not be treated as progress.
type Result struct {
	State    string
	Message  string
	Terminal bool
	Success  bool
	Payload  interface{}
}

// UnexpectedStatusError reports a job status outside the recognized
// vocabulary, with the raw state and any server detail message
type UnexpectedStatusError struct {
	JobID   string
	State   string
	Message string
}

// Error message
func (e *UnexpectedStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job %s: unexpected status %q", e.JobID, e.State)
	}
	return fmt.Sprintf("job %s: unexpected status %q: %s", e.JobID, e.State, e.Message)
}

// Unwrap to the package sentinel
func (e *UnexpectedStatusError) Unwrap() error {
	return status.ErrUnexpectedStatus
}

type settings struct {
	interval  time.Duration
	maxChecks int
	l         *zap.Logger
}

// Option tunes the polling loop
type Option func(*settings)

// Interval sets the sleep duration between status checks
func Interval(d time.Duration) Option {
	return func(s *settings) {
		s.interval = d
	}
}

// MaxChecks bounds the number of status checks (0 means unbounded)
func MaxChecks(n int) Option {
	return func(s *settings) {
		s.maxChecks = n
	}
}

// Logger injects a logging facility into the poll loop
func Logger(l *zap.Logger) Option {
	return func(s *settings) {
		s.l = l
	}
}

// Wait submits the job and polls it to a terminal status, returning the
// terminal payload.
//
// The loop has do-while semantics: even a job that completes synchronously
// gets one status check, since some completions are only observable through
// the status channel. Cancellation is honored at every tick.
func Wait(ctx context.Context, job Job, opts ...Option) (interface{}, error) {
	s := settings{
		interval: DefaultInterval,
		l:        zap.NewNop(),
	}
	for _, apply := range opts {
		apply(&s)
	}

	id, err := job.Start(ctx)
	if err != nil {
		return nil, err
	}
	s.l.Debug("job submitted", zap.String("job_id", id))

	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	for checks := 1; ; checks++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		res, err := job.Check(ctx, id)
		if err != nil {
			return nil, err
		}
		if res.Terminal {
			if res.Success {
				s.l.Debug("job finished", zap.String("job_id", id), zap.Int("checks", checks))
				return res.Payload, nil
			}
			return nil, &UnexpectedStatusError{JobID: id, State: res.State, Message: res.Message}
		}
		s.l.Debug("job in progress",
			zap.String("job_id", id),
			zap.String("state", res.State),
			zap.Int("checks", checks))
		if s.maxChecks > 0 && checks >= s.maxChecks {
			return nil, status.ErrPollLimit.WrapMessage("job %s still %q after %d checks", id, res.State, checks)
		}
		timer.Reset(s.interval)
	}
}
