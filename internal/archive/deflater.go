// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"bytes"
	"fmt"
	"hash"
	"hash/crc32"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Deflater compresses data written to it into a fresh [Entry].
//
// It keeps the uncompressed data as well, so the entry can be stored
// uncompressed if compression is disabled or does not make it smaller.
type Deflater struct {
	data       bytes.Buffer
	compressed bytes.Buffer
	flate      *flate.Writer
	crc        hash.Hash32
	done       bool
}

// NewDeflater creates a new [Deflater]. If compress is false, the data is
// only collected and stored uncompressed.
func NewDeflater(compress bool) (*Deflater, error) {
	deflater := &Deflater{
		crc: crc32.NewIEEE(),
	}

	if compress {
		writer, err := flate.NewWriter(&deflater.compressed, flate.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("new flate writer: %w", err)
		}

		deflater.flate = writer
	}

	return deflater, nil
}

// Write writes uncompressed data.
func (d *Deflater) Write(p []byte) (int, error) {
	if d.done {
		return 0, ErrClosed
	}

	if d.flate != nil {
		if _, err := d.flate.Write(p); err != nil {
			return 0, fmt.Errorf("compress: %w", err)
		}
	}

	// Writes to both never fail.
	_, _ = d.crc.Write(p)
	_, _ = d.data.Write(p)

	return len(p), nil
}

// Bytes returns the uncompressed data written so far.
func (d *Deflater) Bytes() []byte {
	return d.data.Bytes()
}

// Entry finishes the compression and returns the [Entry] with the given
// name and modification time. No further writes are possible afterwards.
func (d *Deflater) Entry(name string, modified time.Time) (*Entry, error) {
	if d.done {
		return nil, &PathError{Op: "finish", Path: name, Err: ErrClosed}
	}

	d.done = true

	method := zip.Store
	raw := d.data.Bytes()

	if d.flate != nil {
		if err := d.flate.Close(); err != nil {
			return nil, &PathError{Op: "finish", Path: name, Err: err}
		}

		if d.compressed.Len() < d.data.Len() {
			method = zip.Deflate
			raw = d.compressed.Bytes()
		}
	}

	entry := newEntry(
		name,
		method,
		d.crc.Sum32(),
		uint64(d.data.Len()),
		modified,
		raw,
	)

	return entry, nil
}
