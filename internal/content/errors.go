// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotRegular is returned if a source or destination exists but is not
	// a regular file.
	ErrNotRegular = errors.New("not a regular file")

	// ErrClosed is returned on writes to a closed destination.
	ErrClosed = fs.ErrClosed
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
