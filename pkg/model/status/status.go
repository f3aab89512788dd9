// Package status exports errors produced by the model package.
package status

import (
	"github.com/oneconcern/metasync/pkg/errors"
)

var (
	// ErrMalformedPath indicates a source path with no usable type segment
	ErrMalformedPath = errors.New("malformed artifact path")

	// ErrMissingName indicates a source path from which no artifact name could be extracted
	ErrMissingName = errors.New("no artifact name in path")

	// ErrUnknownType indicates a metadata type absent from the type registry
	ErrUnknownType = errors.New("unknown metadata type")

	// ErrBadManifest indicates a package manifest that could not be parsed
	ErrBadManifest = errors.New("invalid package manifest")
)
