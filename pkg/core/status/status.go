// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/metasync/pkg/errors"
)

var (
	// ErrEmptyManifest indicates a retrieval was attempted with a manifest
	// holding no members
	ErrEmptyManifest = errors.New("manifest holds no members to retrieve")

	// ErrQueryPaging indicates the server reported more pages without
	// providing a locator to fetch them
	ErrQueryPaging = errors.New("query page without locator")
)
