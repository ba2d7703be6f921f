// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"io"
	"time"
)

// Dest is the target a [Content] is copied into.
//
// The first call to Write starts new content and discards whatever the
// destination held before. Subsequent calls append.
type Dest interface {
	io.Writer

	// Name returns a name identifying the destination, used in errors.
	Name() string

	// Exists returns true if the destination holds readable content.
	Exists() bool

	// ModTime returns the modification time of the current content. It is
	// the zero time if unknown.
	ModTime() time.Time

	// Open opens the current content for reading.
	Open() (io.ReadCloser, error)
}

// Content is an opaque producer of the bytes of a single virtual file.
type Content interface {
	// Open opens the source bytes for reading.
	Open() (io.ReadCloser, error)

	// CopyTo copies the content into dest. It returns true if bytes were
	// written and false if dest was considered current already. With
	// skipIfOlder set, a dest that is not older than the content is not
	// written.
	CopyTo(dest Dest, skipIfOlder bool) (bool, error)
}

// Bytes returns the complete content as it would be copied into an empty
// destination. This works for contents that can not be opened directly.
func Bytes(c Content) ([]byte, error) {
	dest := NewBufferDest("")

	if _, err := c.CopyTo(dest, false); err != nil {
		return nil, err
	}

	return dest.Bytes(), nil
}

// copyIfChanged writes the content of src into dest unless dest exists and
// has the same digest.
func copyIfChanged(src Content, dest Dest) (bool, error) {
	if dest.Exists() {
		same, err := sameDigest(src, dest)
		if err != nil {
			return false, err
		}

		if same {
			return false, nil
		}
	}

	reader, err := src.Open()
	if err != nil {
		return false, err
	}
	defer reader.Close()

	written, err := io.Copy(dest, reader)
	if err != nil {
		return false, &PathError{Op: "copy", Path: dest.Name(), Err: err}
	}

	// Empty content still has to replace whatever dest held.
	if written == 0 {
		if _, err := dest.Write(nil); err != nil {
			return false, &PathError{Op: "copy", Path: dest.Name(), Err: err}
		}
	}

	return true, nil
}

func sameDigest(src Content, dest Dest) (bool, error) {
	srcDigest, err := digestOf(src.Open)
	if err != nil {
		return false, err
	}

	destDigest, err := digestOf(dest.Open)
	if err != nil {
		return false, &PathError{Op: "compare", Path: dest.Name(), Err: err}
	}

	return srcDigest == destDigest, nil
}
