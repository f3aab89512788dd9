// Package status exports errors produced by the session package.
package status

import (
	"github.com/oneconcern/metasync/pkg/errors"
)

var (
	// ErrLogin indicates the login operation itself failed
	ErrLogin = errors.New("login failed")

	// ErrRetryExhausted indicates the call retried after session renewal
	// failed again: the single-retry policy does not try further
	ErrRetryExhausted = errors.New("retry after session renewal failed")
)
