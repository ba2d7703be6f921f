// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package registry

import (
	"errors"
	"io/fs"
	"iter"
	"slices"

	"github.com/aibor/vpack/internal/content"
	"github.com/aibor/vpack/internal/pathmatch"
)

// Registry is an insertion ordered mapping of virtual paths to
// [content.Content].
//
// No registered path is an ancestor directory of another registered path.
// This is checked when a path is added: adding "a/b" fails if "a" is
// registered. The opposite is not checked, so "a" can still be added while
// "a/b" is registered. Materializing such a registry fails later.
//
// Conflicts are returned to the caller and also collected, so a caller may
// continue and report all of them at once with [Registry.Err].
//
// A Registry is not safe for concurrent use.
type Registry struct {
	entries map[string]content.Content
	order   []string
	errs    []error
}

// New creates a new empty [Registry].
func New() *Registry {
	return &Registry{
		entries: make(map[string]content.Content),
	}
}

func (r *Registry) fail(op, path string, err error) error {
	regErr := &Error{Op: op, Path: path, Err: err}
	r.errs = append(r.errs, regErr)

	return regErr
}

// Add registers c for path. Paths are slash separated and relative.
func (r *Registry) Add(path string, c content.Content) error {
	if path == "." || !fs.ValidPath(path) {
		return r.fail("add", path, ErrInvalidPath)
	}

	if c == nil {
		return r.fail("add", path, ErrNilContent)
	}

	if r.entries == nil {
		r.entries = make(map[string]content.Content)
	}

	if _, exists := r.entries[path]; exists {
		return r.fail("add", path, ErrExists)
	}

	for _, ancestor := range pathmatch.Ancestors(path) {
		if _, exists := r.entries[ancestor]; exists {
			return r.fail("add", path, ancestorError(ancestor))
		}
	}

	r.entries[path] = c
	r.order = append(r.order, path)

	return nil
}

func ancestorError(ancestor string) error {
	return &fs.PathError{Op: "lookup", Path: ancestor, Err: ErrAncestorIsFile}
}

// Match returns the registered paths matching the given pattern, in
// registration order.
//
// The empty pattern matches all paths. A pattern containing
// [pathmatch.Wildcard] is matched as glob. A pattern equal to a registered
// path matches only this path. Any other pattern is treated as directory and
// matches all paths below it.
func (r *Registry) Match(pattern string) []string {
	switch {
	case pattern == "":
		return r.Paths()
	case pathmatch.IsGlob(pattern):
		return r.filter(func(path string) bool {
			return pathmatch.Match(path, pattern)
		})
	}

	if _, exists := r.entries[pattern]; exists {
		return []string{pattern}
	}

	dirs := []string{pattern}

	return r.filter(func(path string) bool {
		return pathmatch.Basedir(path, dirs) == pattern
	})
}

func (r *Registry) filter(fn func(string) bool) []string {
	var matches []string

	for _, path := range r.order {
		if fn(path) {
			matches = append(matches, path)
		}
	}

	return matches
}

// Contains returns true if the pattern matches any path.
func (r *Registry) Contains(pattern string) bool {
	return len(r.Match(pattern)) > 0
}

// Remove removes all paths matched by the pattern. See [Registry.Match] for
// the pattern semantics. The order of the remaining paths is retained.
func (r *Registry) Remove(pattern string) error {
	matches := r.Match(pattern)
	if len(matches) == 0 {
		return r.fail("remove", pattern, ErrNoMatch)
	}

	for _, path := range matches {
		delete(r.entries, path)
	}

	r.order = slices.DeleteFunc(r.order, func(path string) bool {
		_, exists := r.entries[path]
		return !exists
	})

	return nil
}

// Paths returns all registered paths in registration order.
func (r *Registry) Paths() []string {
	return slices.Clone(r.order)
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	return len(r.order)
}

// Get returns the content registered for the exact path.
func (r *Registry) Get(path string) (content.Content, error) {
	c, exists := r.entries[path]
	if !exists {
		return nil, &Error{Op: "get", Path: path, Err: ErrNotExist}
	}

	return c, nil
}

// All returns an iterator over all paths and their content in registration
// order.
func (r *Registry) All() iter.Seq2[string, content.Content] {
	return func(yield func(string, content.Content) bool) {
		for _, path := range r.order {
			if !yield(path, r.entries[path]) {
				return
			}
		}
	}
}

// Err returns all conflicts collected so far joined into a single error. It
// returns nil if there were none.
func (r *Registry) Err() error {
	return errors.Join(r.errs...)
}
