// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"io"
	"os"
)

var (
	_ Content = (*File)(nil)
	_ Content = (*Generated)(nil)
)

// File is [Content] read from a regular file on disk.
type File struct {
	Path string
}

// NewFile creates a new [File] for the given path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Open opens the source file.
func (f *File) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		//nolint:wrapcheck
		return nil, err
	}

	return file, nil
}

// CopyTo copies the file into dest.
//
// With skipIfOlder set, nothing is written if dest exists and its
// modification time is not before the one of the source. Otherwise the
// content of an existing dest is compared and only written if it differs.
func (f *File) CopyTo(dest Dest, skipIfOlder bool) (bool, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		//nolint:wrapcheck
		return false, err
	}

	if !info.Mode().IsRegular() {
		return false, &PathError{Op: "copy", Path: f.Path, Err: ErrNotRegular}
	}

	if skipIfOlder && dest.Exists() {
		destTime := dest.ModTime()
		if !destTime.IsZero() && !destTime.Before(info.ModTime()) {
			return false, nil
		}
	}

	return copyIfChanged(f, dest)
}

// Generated is [Content] held in memory.
type Generated struct {
	Data []byte
}

// NewGenerated creates a new [Generated] with the given data.
func NewGenerated(data []byte) *Generated {
	return &Generated{Data: data}
}

// Open returns a reader for the data.
func (g *Generated) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(g.Data)), nil
}

// CopyTo copies the data into dest. As generated content has no
// modification time, skipIfOlder is ignored and an existing dest is only
// rewritten if its content differs.
func (g *Generated) CopyTo(dest Dest, _ bool) (bool, error) {
	return copyIfChanged(g, dest)
}
