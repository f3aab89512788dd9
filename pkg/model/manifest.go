// Copyright © 2021 One Concern

package model

import (
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/oneconcern/metasync/pkg/model/status"
)

const (
	// PackageXMLNamespace is the manifest namespace expected by the server
	PackageXMLNamespace = "http://soap.sforce.com/2006/04/metadata"

	// DefaultAPIVersion is the API version stamped on manifests when the
	// caller does not pick one
	DefaultAPIVersion = 52.0
)

// Manifest maps canonical metadata type names to ordered, deduplicated sets
// of member names. A manifest is built empty, from a package.xml file or from
// a set of source paths, and is mutated only through the Add* operations,
// which re-sort and deduplicate after every merge. Once handed to an
// orchestrator for a submitted job, the orchestrator works from a snapshot
// (PackageSpec) and further mutation does not affect the job.
type Manifest struct {
	// APIVersion serialized as the trailing <version> element
	APIVersion float64

	// SourceDir is the source tree the manifest was built from, when it was
	// built from disk rather than from a package.xml
	SourceDir string

	// DeletionManifest changes the folder-entry inclusion policy: folders
	// themselves are not listed in a destructive changes manifest
	DeletionManifest bool

	members map[string][]string
}

// ManifestOption configures a new manifest
type ManifestOption func(*Manifest)

// APIVersion sets the manifest API version
func APIVersion(v float64) ManifestOption {
	return func(m *Manifest) {
		m.APIVersion = v
	}
}

// SourceDir records the source tree the manifest describes
func SourceDir(dir string) ManifestOption {
	return func(m *Manifest) {
		m.SourceDir = dir
	}
}

// ForDeletion marks the manifest as a deletion (destructive changes) manifest
func ForDeletion() ManifestOption {
	return func(m *Manifest) {
		m.DeletionManifest = true
	}
}

// NewManifest builds an empty manifest
func NewManifest(opts ...ManifestOption) *Manifest {
	m := &Manifest{
		APIVersion: DefaultAPIVersion,
		members:    make(map[string][]string),
	}
	for _, apply := range opts {
		apply(m)
	}
	return m
}

// AddMembers merges members into the set for one canonical type name,
// then re-sorts and deduplicates that set
func (m *Manifest) AddMembers(typeName string, members ...string) {
	if len(members) == 0 {
		return
	}
	m.members[typeName] = dedupe(append(m.members[typeName], members...))
}

// AddGroups merges a raw type name to members structure, as returned by the
// remote list operation (keyed by canonical API names, e.g. "CustomObject")
func (m *Manifest) AddGroups(groups map[string][]string) {
	for typeName, members := range groups {
		m.AddMembers(typeName, members...)
	}
}

// Add merges another manifest into this one
func (m *Manifest) Add(other *Manifest) {
	if other == nil {
		return
	}
	m.AddGroups(other.members)
}

// AddFromPaths parses each source path and merges the corresponding members.
// For folder-grouped artifacts both the folder entry and the composite
// "folder/name" member are added, except that deletion manifests skip the
// folder entry. A path that fails to parse aborts the merge.
func (m *Manifest) AddFromPaths(paths ...string) error {
	for _, p := range paths {
		d, err := ParseArtifactPath(p)
		if err != nil {
			return err
		}
		at, ok := TypeByDirName(d.Type)
		if !ok {
			return status.ErrUnknownType.WrapMessage("directory %q", d.Type)
		}
		if d.Folder != "" && !m.DeletionManifest {
			m.AddMembers(at.APIName, d.Folder)
		}
		m.AddMembers(at.APIName, d.MemberName())
	}
	return nil
}

// Types returns the canonical type names present, in ascending order
func (m *Manifest) Types() []string {
	out := make([]string, 0, len(m.members))
	for t := range m.members {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Members returns a copy of the member set for one type, in ascending order
func (m *Manifest) Members(typeName string) []string {
	src := m.members[typeName]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Empty is true when the manifest holds no members at all
func (m *Manifest) Empty() bool {
	for _, members := range m.members {
		if len(members) > 0 {
			return false
		}
	}
	return true
}

// PackageSpec snapshots the manifest as the server-shaped nested
// type/member structure
func (m *Manifest) PackageSpec() PackageSpec {
	spec := PackageSpec{Version: FormatAPIVersion(m.APIVersion)}
	for _, t := range m.Types() {
		spec.Types = append(spec.Types, PackageTypeMembers{
			Name:    t,
			Members: m.Members(t),
		})
	}
	return spec
}

// xmlPackage is the wire shape of a package.xml manifest
type xmlPackage struct {
	XMLName xml.Name             `xml:"Package"`
	Xmlns   string               `xml:"xmlns,attr"`
	Types   []PackageTypeMembers `xml:"types"`
	Version string               `xml:"version"`
}

// ToXML serializes the manifest to the vendor package.xml format.
//
// Output is deterministic: types ascend lexically, members ascend lexically
// within each type, the version element comes last. Two manifests with the
// same logical content serialize to byte-identical documents whatever the
// merge order was.
func (m *Manifest) ToXML() ([]byte, error) {
	doc := xmlPackage{
		Xmlns:   PackageXMLNamespace,
		Types:   m.PackageSpec().Types,
		Version: FormatAPIVersion(m.APIVersion),
	}
	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(xml.Header)
	b.Write(body)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Parse merges a package.xml document into the manifest
func (m *Manifest) Parse(data []byte) error {
	var doc xmlPackage
	if err := xml.Unmarshal(data, &doc); err != nil {
		return status.ErrBadManifest.Wrap(err)
	}
	for _, block := range doc.Types {
		m.AddMembers(block.Name, block.Members...)
	}
	if doc.Version != "" {
		v, err := strconv.ParseFloat(doc.Version, 64)
		if err != nil {
			return status.ErrBadManifest.WrapMessage("version %q", doc.Version)
		}
		m.APIVersion = v
	}
	return nil
}

// ReadFrom merges a package.xml file into the manifest
func (m *Manifest) ReadFrom(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	return m.Parse(data)
}

// WriteTo writes the manifest as package.xml
func (m *Manifest) WriteTo(fs afero.Fs, path string) error {
	data, err := m.ToXML()
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}

// ArchiveFileList expands every (type, member) pair into the concrete archive
// paths backing it, applying the same companion and folder rules as
// ArchiveEntries. A folder-grouped member without a '/' names a folder
// itself and yields only the folder-level metadata entry. Subcomponent types
// have no file representation and yield nothing.
func (m *Manifest) ArchiveFileList() ([]string, error) {
	var files []string
	for _, t := range m.Types() {
		at, ok := TypeByAPIName(t)
		if !ok {
			return nil, status.ErrUnknownType.WrapMessage("type %q", t)
		}
		if at.Subcomponent {
			continue
		}
		for _, member := range m.Members(t) {
			if at.InFolders {
				folder, name, leaf := strings.Cut(member, "/")
				if !leaf {
					files = append(files, at.DirName+"/"+folder+MetaFileSuffix)
					continue
				}
				d := ArtifactDescriptor{Type: at.DirName, Folder: folder, Name: name}
				if at.Suffix != "" {
					d.Ext = "." + at.Suffix
				}
				files = append(files, d.ArchiveEntries()...)
				continue
			}
			d := ArtifactDescriptor{Type: at.DirName, Name: member}
			if at.Suffix != "" {
				d.Ext = "." + at.Suffix
			}
			files = append(files, d.ArchiveEntries()...)
		}
	}
	return dedupe(files), nil
}

// FormatAPIVersion renders an API version the way the server expects ("52.0")
func FormatAPIVersion(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// dedupe sorts and deduplicates in place, returning the shortened slice
func dedupe(in []string) []string {
	sort.Strings(in)
	out := in[:0]
	var last string
	for i, s := range in {
		if i == 0 || s != last {
			out = append(out, s)
			last = s
		}
	}
	return out
}
