// Copyright © 2021 One Concern

// Package archive maps between base64-encoded zip blobs, as exchanged with
// the server, and files on a local tree. The rest of the client only ever
// handles file lists and blobs: archive internals stay behind the Archiver
// interface.
package archive

import (
	"bytes"
	"encoding/base64"
	"io"
	"path"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"github.com/oneconcern/metasync/pkg/errors"
)

var (
	// ErrBadArchive indicates a blob that does not decode to a zip archive
	ErrBadArchive = errors.New("invalid archive blob")
)

// Archiver reads and writes deployment archives
type Archiver interface {
	// Unzip decodes a base64 blob and extracts every entry under destDir,
	// invoking each (when non-nil) per extracted file
	Unzip(destDir string, b64 string, each func(name string, size int64)) error

	// MakeZip packs the listed files, relative to baseDir, into a base64
	// encoded archive blob. Entry names use forward slashes.
	MakeZip(baseDir string, files []string) (string, error)
}

type zipArchiver struct {
	fs afero.Fs
}

// New builds an Archiver over the given filesystem
func New(fs afero.Fs) Archiver {
	return &zipArchiver{fs: fs}
}

func (z *zipArchiver) Unzip(destDir string, b64 string, each func(name string, size int64)) error {
	blob, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return ErrBadArchive.Wrap(err)
	}
	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return ErrBadArchive.Wrap(err)
	}
	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if err := z.extract(destDir, entry); err != nil {
			return err
		}
		if each != nil {
			each(entry.Name, int64(entry.UncompressedSize64))
		}
	}
	return nil
}

func (z *zipArchiver) extract(destDir string, entry *zip.File) error {
	target := path.Join(destDir, entry.Name)
	if err := z.fs.MkdirAll(path.Dir(target), 0o755); err != nil {
		return err
	}
	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := z.fs.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (z *zipArchiver) MakeZip(baseDir string, files []string) (string, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range files {
		data, err := afero.ReadFile(z.fs, path.Join(baseDir, name))
		if err != nil {
			return "", err
		}
		entry, err := w.Create(name)
		if err != nil {
			return "", err
		}
		if _, err := entry.Write(data); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
