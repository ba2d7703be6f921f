// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package registry_test

import (
	"maps"
	"testing"

	"github.com/aibor/vpack/internal/content"
	"github.com/aibor/vpack/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, paths ...string) *registry.Registry {
	t.Helper()

	reg := registry.New()
	for _, path := range paths {
		require.NoError(t, reg.Add(path, content.NewGenerated([]byte(path))))
	}

	return reg
}

func TestRegistryAdd(t *testing.T) {
	tests := []struct {
		name        string
		existing    []string
		path        string
		expectedErr error
	}{
		{
			name: "first",
			path: "foo",
		},
		{
			name:     "sibling",
			existing: []string{"foo/bar"},
			path:     "foo/baz",
		},
		{
			name:        "duplicate",
			existing:    []string{"foo/bar"},
			path:        "foo/bar",
			expectedErr: registry.ErrExists,
		},
		{
			name:        "below file",
			existing:    []string{"foo"},
			path:        "foo/bar",
			expectedErr: registry.ErrAncestorIsFile,
		},
		{
			name:        "deep below file",
			existing:    []string{"foo/bar"},
			path:        "foo/bar/baz/qux",
			expectedErr: registry.ErrAncestorIsFile,
		},
		{
			name:     "above file is not checked",
			existing: []string{"foo/bar"},
			path:     "foo",
		},
		{
			name:     "name prefix is no ancestor",
			existing: []string{"foo"},
			path:     "foobar/baz",
		},
		{
			name:        "empty",
			path:        "",
			expectedErr: registry.ErrInvalidPath,
		},
		{
			name:        "absolute",
			path:        "/foo",
			expectedErr: registry.ErrInvalidPath,
		},
		{
			name:        "dot dot",
			path:        "foo/../bar",
			expectedErr: registry.ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistry(t, tt.existing...)

			err := reg.Add(tt.path, content.NewGenerated(nil))
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, &registry.Error{Op: "add"})
				assert.Equal(t, tt.existing, reg.Paths(), "paths unchanged")
				assert.ErrorIs(t, reg.Err(), tt.expectedErr, "collected")

				return
			}

			assert.Equal(t, append(tt.existing, tt.path), reg.Paths())
			assert.NoError(t, reg.Err())
		})
	}
}

func TestRegistryAddNilContent(t *testing.T) {
	reg := registry.New()
	require.ErrorIs(t, reg.Add("foo", nil), registry.ErrNilContent)
	assert.Zero(t, reg.Len())
}

func TestRegistryAddKeepsOrderOfNonConflicting(t *testing.T) {
	reg := registry.New()

	for _, path := range []string{"b", "a", "b", "a/x", "c/d", "c/e", "c/d"} {
		_ = reg.Add(path, content.NewGenerated(nil))
	}

	assert.Equal(t, []string{"b", "a", "c/d", "c/e"}, reg.Paths())
	assert.Equal(t, 4, reg.Len())

	err := reg.Err()
	require.ErrorIs(t, err, registry.ErrExists)
	require.ErrorIs(t, err, registry.ErrAncestorIsFile)
	assert.ErrorContains(t, err, `add "a/x"`)
}

func TestRegistryMatch(t *testing.T) {
	reg := newRegistry(t, "foo/bar", "foo/baz", "qux", "foo/sub/file.js", "foobar")

	tests := []struct {
		pattern  string
		expected []string
	}{
		{"", []string{"foo/bar", "foo/baz", "qux", "foo/sub/file.js", "foobar"}},
		{"foo", []string{"foo/bar", "foo/baz", "foo/sub/file.js"}},
		{"foo/", []string{"foo/bar", "foo/baz", "foo/sub/file.js"}},
		{"foo/sub", []string{"foo/sub/file.js"}},
		{"qux", []string{"qux"}},
		{"foo/ba*", []string{"foo/bar", "foo/baz"}},
		{"*.js", []string{"foo/sub/file.js"}},
		{"foo*", []string{"foo/bar", "foo/baz", "foo/sub/file.js", "foobar"}},
		{"missing", nil},
		{"fo", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.expected, reg.Match(tt.pattern))
			assert.Equal(t, tt.expected != nil, reg.Contains(tt.pattern))
		})
	}
}

func TestRegistryRemove(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		reg := newRegistry(t, "foo/bar", "foo/baz", "qux")
		require.NoError(t, reg.Remove("foo"))
		assert.Equal(t, []string{"qux"}, reg.Paths())
	})

	t.Run("glob keeps order", func(t *testing.T) {
		reg := newRegistry(t, "a", "b.js", "c", "d.js", "e")
		require.NoError(t, reg.Remove("*.js"))
		assert.Equal(t, []string{"a", "c", "e"}, reg.Paths())
	})

	t.Run("add then remove restores", func(t *testing.T) {
		reg := newRegistry(t, "a", "b/c")
		before := reg.Paths()

		require.NoError(t, reg.Add("b/d", content.NewGenerated(nil)))
		require.NoError(t, reg.Remove("b/d"))
		assert.Equal(t, before, reg.Paths())
	})

	t.Run("readd after remove appends", func(t *testing.T) {
		reg := newRegistry(t, "a", "b")
		require.NoError(t, reg.Remove("a"))
		require.NoError(t, reg.Add("a", content.NewGenerated(nil)))
		assert.Equal(t, []string{"b", "a"}, reg.Paths())
	})

	t.Run("no match", func(t *testing.T) {
		reg := newRegistry(t, "a")

		err := reg.Remove("b")
		require.ErrorIs(t, err, registry.ErrNoMatch)
		require.ErrorIs(t, err, &registry.Error{Op: "remove"})
		assert.Equal(t, []string{"a"}, reg.Paths())
		assert.ErrorIs(t, reg.Err(), registry.ErrNoMatch)
	})
}

func TestRegistryGet(t *testing.T) {
	reg := newRegistry(t, "foo/bar")

	c, err := reg.Get("foo/bar")
	require.NoError(t, err)

	data, err := content.Bytes(c)
	require.NoError(t, err)
	assert.Equal(t, "foo/bar", string(data))

	_, err = reg.Get("foo")
	require.ErrorIs(t, err, registry.ErrNotExist)
}

func TestRegistryAll(t *testing.T) {
	reg := newRegistry(t, "c", "a", "b/x")

	var paths []string
	for path := range reg.All() {
		paths = append(paths, path)
	}

	assert.Equal(t, reg.Paths(), paths)

	entries := maps.Collect(reg.All())
	assert.Len(t, entries, 3)
}

func TestErrorIs(t *testing.T) {
	err := &registry.Error{Op: "add", Path: "a", Err: registry.ErrExists}

	assert.ErrorIs(t, err, &registry.Error{})
	assert.ErrorIs(t, err, &registry.Error{Op: "add"})
	assert.NotErrorIs(t, err, &registry.Error{Op: "remove"})
	assert.Equal(t, `add "a": file already exists`, err.Error())
}
