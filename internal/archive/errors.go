// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"errors"
	"io/fs"
)

var (
	// ErrDuplicateEntry is returned if an entry is added with a name that
	// is already present.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrUnsupportedMethod is returned when opening an entry compressed with
	// a method other than store or deflate.
	ErrUnsupportedMethod = errors.New("unsupported compression method")

	// ErrClosed is returned on use after close.
	ErrClosed = fs.ErrClosed
)

// PathError records an error and the operation and entry name that caused
// it.
type PathError = fs.PathError
