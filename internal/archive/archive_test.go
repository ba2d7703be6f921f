// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package archive_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aibor/vpack/internal/archive"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEntry(t *testing.T, name, data string, compress bool) *archive.Entry {
	t.Helper()

	deflater, err := archive.NewDeflater(compress)
	require.NoError(t, err)

	_, err = io.WriteString(deflater, data)
	require.NoError(t, err)

	entry, err := deflater.Entry(name, time.Now())
	require.NoError(t, err)

	return entry
}

func readAll(t *testing.T, entry *archive.Entry) string {
	t.Helper()

	reader, err := entry.Open()
	require.NoError(t, err)

	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	return string(data)
}

func writeArchive(t *testing.T, options archive.Options, preload []string, entries ...*archive.Entry) []byte {
	t.Helper()

	var buf bytes.Buffer

	writer := archive.NewWriter(&buf, options)
	for _, entry := range entries {
		require.NoError(t, writer.Add(entry))
	}

	if preload != nil {
		writer.Preload(preload)
	}

	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func names(entries []*archive.Entry) []string {
	result := make([]string, len(entries))
	for idx, entry := range entries {
		result[idx] = entry.Name()
	}

	return result
}

func TestDeflater(t *testing.T) {
	compressible := strings.Repeat("compressible ", 100)

	tests := []struct {
		name           string
		data           string
		compress       bool
		expectedMethod uint16
	}{
		{
			name:           "compressed",
			data:           compressible,
			compress:       true,
			expectedMethod: zip.Deflate,
		},
		{
			name:           "compression disabled",
			data:           compressible,
			expectedMethod: zip.Store,
		},
		{
			name:           "not worth compressing",
			data:           "x",
			compress:       true,
			expectedMethod: zip.Store,
		},
		{
			name:           "empty",
			compress:       true,
			expectedMethod: zip.Store,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := newEntry(t, "file", tt.data, tt.compress)

			assert.Equal(t, "file", entry.Name())
			assert.Equal(t, tt.expectedMethod, entry.Method())
			assert.EqualValues(t, len(tt.data), entry.Size())
			assert.Equal(t, tt.data, readAll(t, entry))

			if tt.expectedMethod == zip.Deflate {
				assert.Less(t, len(entry.Raw()), len(tt.data))
			}
		})
	}
}

func TestDeflaterFinished(t *testing.T) {
	deflater, err := archive.NewDeflater(true)
	require.NoError(t, err)

	_, err = deflater.Entry("file", time.Now())
	require.NoError(t, err)

	_, err = deflater.Write([]byte("more"))
	require.ErrorIs(t, err, archive.ErrClosed)

	_, err = deflater.Entry("file", time.Now())
	require.ErrorIs(t, err, archive.ErrClosed)
}

func TestRoundTrip(t *testing.T) {
	compressible := strings.Repeat("abc", 500)
	modified := time.Date(2024, 5, 17, 13, 37, 42, 0, time.UTC)

	deflater, err := archive.NewDeflater(true)
	require.NoError(t, err)

	_, err = io.WriteString(deflater, compressible)
	require.NoError(t, err)

	timed, err := deflater.Entry("timed", modified)
	require.NoError(t, err)

	data := writeArchive(t, archive.Options{Compress: true}, nil,
		newEntry(t, "b/second", compressible, true),
		newEntry(t, "a/first", "short", true),
		timed,
	)

	// Readable by the standard zip reader, including checksums.
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, reader.File, 3)

	for _, file := range reader.File {
		rc, err := file.Open()
		require.NoError(t, err)

		_, err = io.Copy(io.Discard, rc)
		require.NoError(t, err, file.Name)
		require.NoError(t, rc.Close())
	}

	entries := archive.Read(data)
	assert.Equal(t, []string{"b/second", "a/first", "timed"}, names(entries))
	assert.Equal(t, compressible, readAll(t, entries[0]))
	assert.Equal(t, "short", readAll(t, entries[1]))
	assert.True(t, modified.Equal(entries[2].Modified()), entries[2].Modified())
}

func TestRawBytesKept(t *testing.T) {
	original := newEntry(t, "file", strings.Repeat("data", 100), true)
	first := archive.Read(writeArchive(t, archive.Options{}, nil, original))
	require.Len(t, first, 1)

	second := archive.Read(writeArchive(t, archive.Options{}, nil, first[0]))
	require.Len(t, second, 1)

	assert.Equal(t, original.Raw(), first[0].Raw())
	assert.Equal(t, original.Raw(), second[0].Raw())
	assert.Equal(t, original.CRC32(), second[0].CRC32())
}

func TestReadInvalid(t *testing.T) {
	valid := writeArchive(t, archive.Options{}, nil, newEntry(t, "file", "data", true))

	tests := map[string][]byte{
		"nil":       nil,
		"empty":     {},
		"garbage":   []byte("this is not an archive"),
		"truncated": valid[:len(valid)/2],
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, archive.Read(data))
		})
	}
}

func TestWriterAdd(t *testing.T) {
	writer := archive.NewWriter(io.Discard, archive.Options{})

	require.NoError(t, writer.Add(newEntry(t, "file", "a", false)))

	err := writer.Add(newEntry(t, "file", "b", false))
	require.ErrorIs(t, err, archive.ErrDuplicateEntry)

	require.NoError(t, writer.Close())

	err = writer.Add(newEntry(t, "other", "c", false))
	require.ErrorIs(t, err, archive.ErrClosed)
	require.ErrorIs(t, writer.Close(), archive.ErrClosed)
}

func TestWriterPreload(t *testing.T) {
	entries := func() []*archive.Entry {
		return []*archive.Entry{
			newEntry(t, "a", "a", false),
			newEntry(t, "b", "b", false),
			newEntry(t, "c", "c", false),
			newEntry(t, "d", "d", false),
		}
	}

	tests := []struct {
		name     string
		preload  []string
		expected []string
	}{
		{
			name:     "none",
			preload:  []string{},
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "reorder",
			preload:  []string{"c", "a"},
			expected: []string{"c", "a", "b", "d"},
		},
		{
			name:     "missing and duplicates skipped",
			preload:  []string{"d", "missing", "d", "b"},
			expected: []string{"d", "b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := writeArchive(t, archive.Options{}, tt.preload, entries()...)
			assert.Equal(t, tt.expected, names(archive.Read(data)))
		})
	}
}

func TestWriterOptimize(t *testing.T) {
	data := writeArchive(t, archive.Options{Optimize: true}, []string{"b"},
		newEntry(t, "a", strings.Repeat("a", 100), false),
		newEntry(t, "b", strings.Repeat("b", 100), false),
	)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	size, found := archive.PreloadSize(reader.Comment)
	require.True(t, found, reader.Comment)

	offset, err := reader.File[1].DataOffset()
	require.NoError(t, err)

	first, err := reader.File[0].DataOffset()
	require.NoError(t, err)
	assert.Equal(t, "b", reader.File[0].Name)
	assert.Equal(t, first+100, size)

	// The second entry's header starts where the preloaded region ends.
	assert.Greater(t, offset, size)

	entries := archive.Read(data)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Name())
	assert.Equal(t, "a", entries[1].Name())

	t.Run("not optimized", func(t *testing.T) {
		data := writeArchive(t, archive.Options{}, []string{"b"},
			newEntry(t, "a", "a", false),
			newEntry(t, "b", "b", false),
		)

		reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)
		assert.Empty(t, reader.Comment)
	})
}

func TestPreloadSize(t *testing.T) {
	size, found := archive.PreloadSize("preload=1234")
	assert.True(t, found)
	assert.EqualValues(t, 1234, size)

	_, found = archive.PreloadSize("something else")
	assert.False(t, found)

	_, found = archive.PreloadSize("preload=x")
	assert.False(t, found)
}
