// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"time"
)

const fileMode = 0o644

var (
	_ Dest = (*FileDest)(nil)
	_ Dest = (*BufferDest)(nil)
)

// FileDest is a [Dest] on the real file system.
//
// The file is truncated on the first write. Call [FileDest.Close] once the
// copy is done.
type FileDest struct {
	path   string
	file   *os.File
	closed bool
}

// NewFileDest creates a new [FileDest] for the given path. The parent
// directory must exist before the first write.
func NewFileDest(path string) *FileDest {
	return &FileDest{path: path}
}

// Name returns the file path.
func (d *FileDest) Name() string {
	return d.path
}

func (d *FileDest) stat() (fs.FileInfo, bool) {
	info, err := os.Stat(d.path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}

	return info, true
}

// Exists returns true if the path is an existing regular file.
func (d *FileDest) Exists() bool {
	_, exists := d.stat()
	return exists
}

// ModTime returns the modification time of the file.
func (d *FileDest) ModTime() time.Time {
	info, exists := d.stat()
	if !exists {
		return time.Time{}
	}

	return info.ModTime()
}

// Open opens the file for reading.
func (d *FileDest) Open() (io.ReadCloser, error) {
	file, err := os.Open(d.path)
	if err != nil {
		//nolint:wrapcheck
		return nil, err
	}

	return file, nil
}

// Write writes to the file. The first call truncates it.
func (d *FileDest) Write(p []byte) (int, error) {
	if d.closed {
		return 0, &PathError{Op: "write", Path: d.path, Err: ErrClosed}
	}

	if d.file == nil {
		file, err := os.OpenFile(d.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
		if err != nil {
			//nolint:wrapcheck
			return 0, err
		}

		d.file = file
	}

	//nolint:wrapcheck
	return d.file.Write(p)
}

// Close closes the file, if it has been written to.
func (d *FileDest) Close() error {
	if d.closed {
		return nil
	}

	d.closed = true

	if d.file == nil {
		return nil
	}

	//nolint:wrapcheck
	return d.file.Close()
}

// BufferDest is an in-memory [Dest]. It exists once written to.
type BufferDest struct {
	name    string
	buf     bytes.Buffer
	written bool
	modTime time.Time
}

// NewBufferDest creates a new empty [BufferDest].
func NewBufferDest(name string) *BufferDest {
	return &BufferDest{name: name}
}

// Name returns the name given on creation.
func (d *BufferDest) Name() string {
	return d.name
}

// Exists returns true once the buffer has been written to.
func (d *BufferDest) Exists() bool {
	return d.written
}

// ModTime returns the time of the first write.
func (d *BufferDest) ModTime() time.Time {
	return d.modTime
}

// Open returns a reader over the written bytes.
func (d *BufferDest) Open() (io.ReadCloser, error) {
	if !d.written {
		return nil, &PathError{Op: "open", Path: d.name, Err: fs.ErrNotExist}
	}

	return io.NopCloser(bytes.NewReader(d.buf.Bytes())), nil
}

// Write appends to the buffer. The first call discards prior content.
func (d *BufferDest) Write(p []byte) (int, error) {
	if !d.written {
		d.buf.Reset()
		d.written = true
		d.modTime = time.Now()
	}

	//nolint:wrapcheck
	return d.buf.Write(p)
}

// Bytes returns the written bytes.
func (d *BufferDest) Bytes() []byte {
	return d.buf.Bytes()
}
