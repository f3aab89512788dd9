// Copyright © 2021 One Concern

package model

import (
	"strings"

	"github.com/oneconcern/metasync/pkg/model/status"
)

// MetaFileSuffix is the suffix of companion metadata files in a
// deployment archive
const MetaFileSuffix = "-meta.xml"

// sourceRoots are directory names recognized as the root of a metadata
// source tree. Any leading path segments up to and including the innermost
// root are ignored when parsing.
var sourceRoots = map[string]struct{}{
	"src":        {},
	"unpackaged": {},
}

// ArtifactDescriptor identifies a single artifact parsed from a source path
type ArtifactDescriptor struct {
	// Type is the artifact's directory name in the source tree
	Type string

	// Folder is set for folder-grouped types when the path carries a
	// folder segment
	Folder string

	// Name is the artifact base name, never empty
	Name string

	// Ext is the registered file extension with leading dot, or empty for
	// free-form and bare-meta names
	Ext string
}

// ParseArtifactPath translates one on-disk relative path into an artifact
// descriptor.
//
// The path is normalized first: backslash separators, stray CR/LF and any
// prefix up through a known source root ("src", "unpackaged") are dropped.
// The first remaining segment selects the artifact type; a second segment
// names the folder for folder-grouped types. Name and extension are split
// according to the type's registered suffix, with "-meta.xml" companions
// recognized in all their forms. Server-issued listings substitute ':' for
// '.' in composite names, so the substitution is reversed here.
func ParseArtifactPath(p string) (ArtifactDescriptor, error) {
	clean := strings.NewReplacer("\\", "/", "\r", "", "\n", "").Replace(p)
	segs := make([]string, 0, 8)
	for _, s := range strings.Split(clean, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	for i := len(segs) - 2; i >= 0; i-- {
		if _, ok := sourceRoots[segs[i]]; ok {
			segs = segs[i+1:]
			break
		}
	}
	if len(segs) == 0 {
		return ArtifactDescriptor{}, status.ErrMalformedPath.WrapMessage("no type directory in %q", p)
	}

	d := ArtifactDescriptor{Type: segs[0]}
	at, ok := TypeByDirName(d.Type)
	if !ok {
		return ArtifactDescriptor{}, status.ErrUnknownType.WrapMessage("directory %q in %q", d.Type, p)
	}
	rest := segs[1:]
	if len(rest) == 0 {
		return ArtifactDescriptor{}, status.ErrMissingName.WrapMessage("path %q", p)
	}
	if at.InFolders && len(rest) >= 2 {
		d.Folder = rest[0]
		rest = rest[1:]
	}

	base := strings.TrimSuffix(rest[len(rest)-1], MetaFileSuffix)
	switch {
	case at.Suffix == "":
		// free-form types keep whatever extension the member carries
		d.Name = base
	case strings.HasSuffix(base, "."+at.Suffix):
		d.Name = base[:len(base)-len(at.Suffix)-1]
		d.Ext = "." + at.Suffix
	default:
		// bare name, e.g. a "Foo-meta.xml" without the primary file suffix
		d.Name = base
	}
	d.Name = strings.ReplaceAll(d.Name, ":", ".")
	if d.Name == "" {
		return ArtifactDescriptor{}, status.ErrMissingName.WrapMessage("path %q", p)
	}
	return d, nil
}

// ArchiveEntries expands the descriptor into the full set of archive entry
// paths needed to deploy the artifact. Types with a companion metadata file
// get their "-meta.xml" sibling, and folder-grouped types additionally get
// the folder-level "-meta.xml" entry. Omitting any of these produces a
// silently incomplete deployment, so callers must ship every returned entry.
func (d ArtifactDescriptor) ArchiveEntries() []string {
	at, ok := TypeByDirName(d.Type)
	if !ok || at.Subcomponent {
		return nil
	}
	entries := make([]string, 0, 3)
	prefix := d.Type + "/"
	if d.Folder != "" {
		entries = append(entries, prefix+d.Folder+MetaFileSuffix)
		prefix += d.Folder + "/"
	}
	primary := prefix + d.Name + d.Ext
	entries = append(entries, primary)
	if at.HasMetaFile {
		entries = append(entries, primary+MetaFileSuffix)
	}
	return entries
}

// MemberName is the manifest member this descriptor maps to:
// "folder/name" for folder-grouped artifacts, the bare name otherwise.
func (d ArtifactDescriptor) MemberName() string {
	if d.Folder != "" {
		return d.Folder + "/" + d.Name
	}
	return d.Name
}
