// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cpio_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/aibor/vpack/internal/content"
	vcpio "github.com/aibor/vpack/internal/cpio"
	"github.com/aibor/vpack/internal/registry"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	regularFileBody := make([]byte, 200)
	for idx := range regularFileBody {
		regularFileBody[idx] = byte(idx)
	}

	modTime := time.Unix(1700000000, 0)

	tests := []struct {
		name         string
		run          func(w *vcpio.Writer) error
		expectedErr  error
		assertHeader func(t assert.TestingT, hdr *cpio.Header)
		expectedBody []byte
	}{
		{
			name: "write directory",
			run: func(w *vcpio.Writer) error {
				return w.WriteDirectory("test")
			},
			assertHeader: func(t assert.TestingT, hdr *cpio.Header) {
				assert.Equal(t, "test", hdr.Name, "name")
				assert.EqualValues(t, 0o755|cpio.TypeDir, hdr.Mode, "mode")
				assert.EqualValues(t, 0, hdr.Size, "size")
			},
		},
		{
			name: "write regular",
			run: func(w *vcpio.Writer) error {
				return w.WriteRegular("test", regularFileBody, modTime)
			},
			assertHeader: func(t assert.TestingT, hdr *cpio.Header) {
				assert.Equal(t, "test", hdr.Name, "name")
				assert.EqualValues(t, 0o644|cpio.TypeReg, hdr.Mode, "mode")
				assert.EqualValues(t, 200, hdr.Size, "size")
				assert.True(t, modTime.Equal(hdr.ModTime), "modtime")
			},
			expectedBody: regularFileBody,
		},
		{
			name: "write closed",
			run: func(w *vcpio.Writer) error {
				err := w.Close()
				require.NoError(t, err)

				return w.WriteDirectory("test")
			},
			expectedErr: cpio.ErrWriteAfterClose,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var archive bytes.Buffer

			w := vcpio.NewWriter(&archive)

			err := tt.run(w)
			require.ErrorIs(t, err, tt.expectedErr)

			r := cpio.NewReader(&archive)

			if tt.assertHeader == nil {
				return
			}

			h, err := r.Next()
			require.NoError(t, err)

			tt.assertHeader(t, h)

			if tt.expectedBody == nil {
				return
			}

			body := make([]byte, h.Size)
			_, err = io.ReadFull(r, body)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestWriteRegistry(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Add("a/b/one", content.NewGenerated([]byte("one"))))
	require.NoError(t, reg.Add("top", content.NewGenerated([]byte("top"))))
	require.NoError(t, reg.Add("a/two", content.NewGenerated(nil)))

	var archive bytes.Buffer
	require.NoError(t, vcpio.WriteRegistry(&archive, reg.All()))

	type entry struct {
		name string
		dir  bool
		body string
	}

	var actual []entry

	r := cpio.NewReader(&archive)

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)

		body, err := io.ReadAll(r)
		require.NoError(t, err)

		actual = append(actual, entry{
			name: hdr.Name,
			dir:  hdr.Mode.IsDir(),
			body: string(body),
		})
	}

	expected := []entry{
		{name: "a", dir: true},
		{name: "a/b", dir: true},
		{name: "a/b/one", body: "one"},
		{name: "top", body: "top"},
		{name: "a/two"},
	}

	assert.Equal(t, expected, actual)
}

type silentContent struct{}

func (silentContent) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (silentContent) CopyTo(content.Dest, bool) (bool, error) {
	return false, nil
}

func TestWriteRegistryNoContent(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Add("silent", silentContent{}))

	err := vcpio.WriteRegistry(io.Discard, reg.All())
	require.ErrorIs(t, err, vcpio.ErrNoContent)
}
