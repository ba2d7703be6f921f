// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package copier

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotDir is returned if the destination exists but is not a
	// directory.
	ErrNotDir = errors.New("not a directory")

	// ErrPathConflict is returned if a registered path is a directory in the
	// destination that contains other registered paths.
	ErrPathConflict = errors.New("path is a directory of other entries")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
