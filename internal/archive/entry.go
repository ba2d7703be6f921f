// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

const (
	extTimeExtraID  = 0x5455
	extTimeExtraLen = 9
	extTimeModFlag  = 0x1
)

// Entry is a single compressed archive entry.
type Entry struct {
	header zip.FileHeader
	raw    []byte
}

func newEntry(
	name string,
	method uint16,
	crc uint32,
	size uint64,
	modified time.Time,
	raw []byte,
) *Entry {
	header := zip.FileHeader{
		Name:               name,
		Method:             method,
		CRC32:              crc,
		CompressedSize64:   uint64(len(raw)),
		UncompressedSize64: size,
	}

	if !modified.IsZero() {
		setModified(&header, modified)
	}

	return &Entry{
		header: header,
		raw:    raw,
	}
}

// setModified sets the MS-DOS time fields and the extended timestamp extra
// field. Raw headers are written as they are, so this is not done by the
// zip writer.
func setModified(header *zip.FileHeader, modified time.Time) {
	modified = modified.UTC()

	//nolint:staticcheck
	header.SetModTime(modified)

	extra := make([]byte, extTimeExtraLen)
	binary.LittleEndian.PutUint16(extra[0:], extTimeExtraID)
	binary.LittleEndian.PutUint16(extra[2:], extTimeExtraLen-4)
	extra[4] = extTimeModFlag
	binary.LittleEndian.PutUint32(extra[5:], uint32(modified.Unix()))

	header.Extra = extra
}

// Name returns the name of the entry.
func (e *Entry) Name() string {
	return e.header.Name
}

// Modified returns the modification time of the entry.
func (e *Entry) Modified() time.Time {
	return e.header.Modified
}

// Method returns the compression method.
func (e *Entry) Method() uint16 {
	return e.header.Method
}

// CRC32 returns the checksum of the uncompressed data.
func (e *Entry) CRC32() uint32 {
	return e.header.CRC32
}

// Size returns the size of the uncompressed data.
func (e *Entry) Size() uint64 {
	return e.header.UncompressedSize64
}

// Raw returns the compressed bytes. They must not be modified.
func (e *Entry) Raw() []byte {
	return e.raw
}

// OpenRaw returns a reader for the compressed bytes.
func (e *Entry) OpenRaw() io.Reader {
	return bytes.NewReader(e.raw)
}

// Open returns a reader for the uncompressed bytes.
func (e *Entry) Open() (io.ReadCloser, error) {
	switch e.header.Method {
	case zip.Store:
		return io.NopCloser(e.OpenRaw()), nil
	case zip.Deflate:
		return flate.NewReader(e.OpenRaw()), nil
	default:
		return nil, &PathError{Op: "open", Path: e.Name(), Err: ErrUnsupportedMethod}
	}
}
