// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Read returns the entries of the zip archive in data in the order of the
// archive's central directory. Directory entries are skipped.
//
// Data that is not a valid archive yields no entries. This includes empty
// data.
func Read(data []byte) []*Entry {
	if len(data) == 0 {
		return nil
	}

	entries, err := read(data)
	if err != nil {
		slog.Debug("Ignoring unreadable archive", slog.Any("error", err))
		return nil
	}

	return entries
}

func read(data []byte) ([]*Entry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if size, found := PreloadSize(reader.Comment); found {
		slog.Debug("Reading optimized archive", slog.Int64("preload_size", size))
	}

	entries := make([]*Entry, 0, len(reader.File))

	for _, file := range reader.File {
		if strings.HasSuffix(file.Name, "/") {
			continue
		}

		rawReader, err := file.OpenRaw()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file.Name, err)
		}

		raw, err := io.ReadAll(rawReader)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Name, err)
		}

		if uint64(len(raw)) != file.CompressedSize64 {
			return nil, fmt.Errorf("read %s: %w", file.Name, io.ErrUnexpectedEOF)
		}

		entries = append(entries, newEntry(
			file.Name,
			file.Method,
			file.CRC32,
			file.UncompressedSize64,
			file.Modified,
			raw,
		))
	}

	return entries, nil
}

// Index returns the entries keyed by name.
func Index(entries []*Entry) map[string]*Entry {
	index := make(map[string]*Entry, len(entries))
	for _, entry := range entries {
		index[entry.Name()] = entry
	}

	return index
}
