// Copyright © 2021 One Concern

package model

// JobKind distinguishes the two long-running server-side operations
type JobKind string

const (
	// JobRetrieve is a metadata retrieval job
	JobRetrieve JobKind = "retrieve"

	// JobDeploy is a metadata deployment job
	JobDeploy JobKind = "deploy"
)

// Server-defined job states. The in-progress vocabulary is shared by
// retrieve and deploy; "Succeeded" is the only success terminal state.
// Any state outside this vocabulary is treated as a failure and is never
// silently retried.
const (
	JobStateQueued     = "Queued"
	JobStatePending    = "Pending"
	JobStateInProgress = "InProgress"
	JobStateSucceeded  = "Succeeded"
)

// JobInProgress reports whether a raw server state is a recognized
// non-terminal state
func JobInProgress(state string) bool {
	switch state {
	case JobStateQueued, JobStatePending, JobStateInProgress:
		return true
	}
	return false
}

// AsyncJob tracks one submitted long-running operation
type AsyncJob struct {
	// ID is the opaque identifier issued by the server on submission
	ID string

	// Kind of operation the job tracks
	Kind JobKind

	// State is the last raw state reported by the server
	State string
}
