// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
)

// PreloadCommentPrefix is the prefix of the archive comment that records
// the size of the preloaded region in optimized archives.
const PreloadCommentPrefix = "preload="

// dataDescriptorFlag is the general purpose flag announcing a data
// descriptor after the entry data.
const dataDescriptorFlag = 0x8

// Options configure a [Writer].
type Options struct {
	// Compress new entries with deflate. Entries that are added as they are
	// keep their compression.
	Compress bool

	// Optimize the layout for sequential access: preloaded entries are
	// written first and the archive comment records the byte offset their
	// region ends at.
	Optimize bool
}

// Writer collects compressed entries and writes them into a zip archive on
// [Writer.Close].
type Writer struct {
	out       io.Writer
	options   Options
	entries   []*Entry
	names     map[string]struct{}
	preloaded int
	closed    bool
}

// NewWriter creates a new [Writer] that writes into out.
func NewWriter(out io.Writer, options Options) *Writer {
	return &Writer{
		out:     out,
		options: options,
		names:   make(map[string]struct{}),
	}
}

// Add adds the entry. Entries are written in the order they are added, unless
// reordered by [Writer.Preload].
func (w *Writer) Add(entry *Entry) error {
	if w.closed {
		return &PathError{Op: "add", Path: entry.Name(), Err: ErrClosed}
	}

	if _, exists := w.names[entry.Name()]; exists {
		return &PathError{Op: "add", Path: entry.Name(), Err: ErrDuplicateEntry}
	}

	w.names[entry.Name()] = struct{}{}
	w.entries = append(w.entries, entry)

	return nil
}

// Preload moves the entries with the given names to the front, in the given
// order. The remaining entries keep their relative order. Names without
// entry are skipped. A later call replaces the preloaded set of an earlier
// one.
func (w *Writer) Preload(names []string) {
	positions := make(map[string]int, len(w.entries))
	for idx, entry := range w.entries {
		positions[entry.Name()] = idx
	}

	reordered := make([]*Entry, 0, len(w.entries))
	taken := make([]bool, len(w.entries))

	for _, name := range names {
		idx, exists := positions[name]
		if !exists {
			slog.Warn("Skipping preload of missing entry", slog.String("name", name))
			continue
		}

		if taken[idx] {
			continue
		}

		taken[idx] = true

		reordered = append(reordered, w.entries[idx])
	}

	w.preloaded = len(reordered)

	for idx, entry := range w.entries {
		if !taken[idx] {
			reordered = append(reordered, entry)
		}
	}

	w.entries = reordered
}

// Close writes all entries and the central directory. It does not close
// the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}

	w.closed = true

	counter := &countingWriter{writer: w.out}
	zipWriter := zip.NewWriter(counter)

	for idx, entry := range w.entries {
		if err := writeEntry(zipWriter, entry); err != nil {
			return err
		}

		if w.options.Optimize && idx+1 == w.preloaded {
			if err := zipWriter.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}

			err := zipWriter.SetComment(PreloadCommentPrefix + strconv.FormatInt(counter.count, 10))
			if err != nil {
				return fmt.Errorf("set comment: %w", err)
			}
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func writeEntry(zipWriter *zip.Writer, entry *Entry) error {
	header := entry.header
	header.Flags &^= dataDescriptorFlag

	writer, err := zipWriter.CreateRaw(&header)
	if err != nil {
		return &PathError{Op: "write header", Path: entry.Name(), Err: err}
	}

	if _, err := writer.Write(entry.raw); err != nil {
		return &PathError{Op: "write", Path: entry.Name(), Err: err}
	}

	return nil
}

// PreloadSize returns the size of the preloaded region recorded in an
// archive comment and whether there is one.
func PreloadSize(comment string) (int64, bool) {
	value, found := strings.CutPrefix(comment, PreloadCommentPrefix)
	if !found {
		return 0, false
	}

	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}

	return size, true
}

type countingWriter struct {
	writer io.Writer
	count  int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.writer.Write(p)
	w.count += int64(n)

	//nolint:wrapcheck
	return n, err
}
