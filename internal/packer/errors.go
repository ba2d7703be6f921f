// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package packer

import (
	"errors"
	"io/fs"
)

var (
	// ErrNoContent is returned if a content neither wrote anything nor was
	// there a prior entry to keep.
	ErrNoContent = errors.New("content wrote nothing and no prior entry exists")

	// ErrNotExist is returned when opening a sink without content.
	ErrNotExist = fs.ErrNotExist

	// ErrUnsupported is returned when reading a [Packer] directly.
	ErrUnsupported = errors.ErrUnsupported
)

// PathError records an error and the operation and entry path that caused
// it.
type PathError = fs.PathError
