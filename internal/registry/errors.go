// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package registry

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrExists is returned if a path is added that is already registered.
	ErrExists = fs.ErrExist

	// ErrNotExist is returned on lookup of a path that is not registered.
	ErrNotExist = fs.ErrNotExist

	// ErrInvalidPath is returned if a path is not a valid virtual path.
	ErrInvalidPath = fs.ErrInvalid

	// ErrAncestorIsFile is returned if a path is added below a path that is
	// registered as a file.
	ErrAncestorIsFile = errors.New("ancestor is a file")

	// ErrNoMatch is returned if a pattern does not match any path.
	ErrNoMatch = errors.New("no matching entries")

	// ErrNilContent is returned if nil is added as content.
	ErrNilContent = errors.New("content is nil")
)

// Error is a registry conflict attributable to a path or pattern.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

// Is matches any [Error] with the same Op. An empty target Op matches all.
func (e *Error) Is(other error) bool {
	otherErr, ok := other.(*Error)
	if !ok {
		return false
	}

	return otherErr.Op == "" || otherErr.Op == e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}
