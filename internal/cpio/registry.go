// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cpio

import (
	"fmt"
	"io"
	"iter"

	"github.com/aibor/vpack/internal/content"
	"github.com/aibor/vpack/internal/pathmatch"
)

// Entries is the source of the archive's files, as returned by the All
// method of a registry.
type Entries = iter.Seq2[string, content.Content]

// WriteRegistry writes all entries as CPIO archive into out, in iteration
// order. Every parent directory is written once, right before the first
// file in it.
func WriteRegistry(out io.Writer, entries Entries) error {
	writer := NewWriter(out)
	written := map[string]struct{}{}

	for path, src := range entries {
		for _, dir := range pathmatch.Ancestors(path) {
			if _, exists := written[dir]; exists {
				continue
			}

			if err := writer.WriteDirectory(dir); err != nil {
				return err
			}

			written[dir] = struct{}{}
		}

		dest := content.NewBufferDest(path)

		if _, err := src.CopyTo(dest, false); err != nil {
			return fmt.Errorf("copy %s: %w", path, err)
		}

		if !dest.Exists() {
			return &content.PathError{Op: "copy", Path: path, Err: ErrNoContent}
		}

		if err := writer.WriteRegular(path, dest.Bytes(), dest.ModTime()); err != nil {
			return err
		}
	}

	return writer.Close()
}
