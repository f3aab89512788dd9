package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oneconcern/metasync/pkg/errors"
	"github.com/oneconcern/metasync/pkg/model/status"
)

func TestParseArtifactPath(t *testing.T) {
	for _, tc := range []struct {
		path     string
		expected ArtifactDescriptor
	}{
		{
			path:     "classes/Invoicing.cls",
			expected: ArtifactDescriptor{Type: "classes", Name: "Invoicing", Ext: ".cls"},
		},
		{
			path:     "classes/Invoicing.cls-meta.xml",
			expected: ArtifactDescriptor{Type: "classes", Name: "Invoicing", Ext: ".cls"},
		},
		{
			path:     "email/Alerts/Welcome.email-meta.xml",
			expected: ArtifactDescriptor{Type: "email", Folder: "Alerts", Name: "Welcome", Ext: ".email"},
		},
		{
			path:     "email/Alerts/Welcome.email",
			expected: ArtifactDescriptor{Type: "email", Folder: "Alerts", Name: "Welcome", Ext: ".email"},
		},
		{
			// prefix up through the source root is ignored
			path:     "/home/me/checkout/src/triggers/AccountSync.trigger",
			expected: ArtifactDescriptor{Type: "triggers", Name: "AccountSync", Ext: ".trigger"},
		},
		{
			// backslash separators and CR artifacts are normalized
			path:     "unpackaged\\objects\\Invoice__c.object\r",
			expected: ArtifactDescriptor{Type: "objects", Name: "Invoice__c", Ext: ".object"},
		},
		{
			// free-form type: member keeps its own extension
			path:     "documents/Logos/header.png",
			expected: ArtifactDescriptor{Type: "documents", Folder: "Logos", Name: "header.png"},
		},
		{
			// bare companion file without the primary suffix
			path:     "documents/Logos/header.png-meta.xml",
			expected: ArtifactDescriptor{Type: "documents", Folder: "Logos", Name: "header.png"},
		},
		{
			// server deletion listings substitute ':' for '.'
			path:     "documents/Logos/header:png",
			expected: ArtifactDescriptor{Type: "documents", Folder: "Logos", Name: "header.png"},
		},
		{
			// folder-level companion of a folder-grouped type
			path:     "email/Alerts-meta.xml",
			expected: ArtifactDescriptor{Type: "email", Name: "Alerts"},
		},
	} {
		d, err := ParseArtifactPath(tc.path)
		require.NoError(t, err, "path %q", tc.path)
		require.Equal(t, tc.expected, d, "path %q", tc.path)
	}
}

func TestParseArtifactPathErrors(t *testing.T) {
	_, err := ParseArtifactPath("")
	require.Error(t, err)
	require.True(t, errors.Is(err, status.ErrMalformedPath))

	_, err = ParseArtifactPath("notatype/Foo.cls")
	require.Error(t, err)
	require.True(t, errors.Is(err, status.ErrUnknownType))

	_, err = ParseArtifactPath("classes")
	require.Error(t, err)
	require.True(t, errors.Is(err, status.ErrMissingName))
}

func TestArchiveEntries(t *testing.T) {
	d, err := ParseArtifactPath("classes/Foo.cls")
	require.NoError(t, err)
	require.Equal(t, []string{
		"classes/Foo.cls",
		"classes/Foo.cls-meta.xml",
	}, d.ArchiveEntries())

	d, err = ParseArtifactPath("email/Alerts/Welcome.email")
	require.NoError(t, err)
	require.Equal(t, []string{
		"email/Alerts-meta.xml",
		"email/Alerts/Welcome.email",
		"email/Alerts/Welcome.email-meta.xml",
	}, d.ArchiveEntries())

	// no companion for manifest-only types
	d, err = ParseArtifactPath("layouts/Account-Account Layout.layout")
	require.NoError(t, err)
	require.Equal(t, []string{
		"layouts/Account-Account Layout.layout",
	}, d.ArchiveEntries())
}

func TestParseExpandRoundTrip(t *testing.T) {
	for _, p := range []string{
		"classes/Foo.cls",
		"triggers/Bar.trigger",
		"pages/Home.page",
		"objects/Invoice__c.object",
		"email/Alerts/Welcome.email",
		"documents/Logos/header.png",
		"reports/Sales/Pipeline.report",
		"staticresources/app.resource",
	} {
		d, err := ParseArtifactPath(p)
		require.NoError(t, err, "path %q", p)
		for _, entry := range d.ArchiveEntries() {
			rd, err := ParseArtifactPath(entry)
			require.NoError(t, err, "entry %q of %q", entry, p)
			if rd.Folder == "" && d.Folder != "" && rd.Name == d.Folder {
				// folder-level companion round-trips to the folder itself
				continue
			}
			require.Equal(t, d.Type, rd.Type, "entry %q of %q", entry, p)
			require.Equal(t, d.Folder, rd.Folder, "entry %q of %q", entry, p)
			require.Equal(t, d.Name, rd.Name, "entry %q of %q", entry, p)
		}
	}
}
