// Package status exports errors produced by the poll package.
package status

import (
	"github.com/oneconcern/metasync/pkg/errors"
)

var (
	// ErrUnexpectedStatus indicates a job reported a status outside the
	// recognized vocabulary
	ErrUnexpectedStatus = errors.New("job reported an unexpected status")

	// ErrPollLimit indicates the configured maximum number of status
	// checks elapsed before the job reached a terminal state
	ErrPollLimit = errors.New("giving up polling job status")
)
