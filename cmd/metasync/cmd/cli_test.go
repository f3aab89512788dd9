package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/metasync/pkg/model"
)

func testFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestManifestGenerate(t *testing.T) {
	src := t.TempDir()
	testFile(t, filepath.Join(src, "classes", "Foo.cls"), "public class Foo {}")
	testFile(t, filepath.Join(src, "classes", "Foo.cls-meta.xml"), "<ApexClass/>")
	testFile(t, filepath.Join(src, "objects", "Account.object"), "<CustomObject/>")
	testFile(t, filepath.Join(src, "notes.txt"), "not an artifact")

	out := filepath.Join(t.TempDir(), "package.xml")
	rootCmd.SetArgs([]string{"manifest", "generate",
		"--source", src, "--output", out, "--loglevel", "none"})
	require.NoError(t, rootCmd.Execute())

	m := model.NewManifest()
	require.NoError(t, m.ReadFrom(afero.NewOsFs(), out))
	assert.Equal(t, []string{"Foo"}, m.Members("ApexClass"))
	assert.Equal(t, []string{"Account"}, m.Members("CustomObject"))
}

func TestFormatRecord(t *testing.T) {
	record := model.Record{Type: "Account", ID: "001A", Fields: []model.FieldValue{
		{Name: "Name", Value: "Acme"},
		{Name: "Industry", Value: "Energy"},
	}}
	assert.Equal(t, "Account Id=001A Name=Acme Industry=Energy", formatRecord(record))
}
