// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package virtfs

import (
	"errors"
	"io/fs"
)

var (
	// ErrFileNotExist is returned if a file that is looked up does not exist.
	ErrFileNotExist = fs.ErrNotExist

	// ErrFileExist is returned if a file exists that was not expected.
	ErrFileExist = fs.ErrExist

	// ErrFileInvalid is returned if a file is invalid for the requested
	// operation.
	ErrFileInvalid = fs.ErrInvalid

	// ErrFileNotDir is returned if a file exists but is not a directory.
	ErrFileNotDir = errors.New("not a directory")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
