// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pathmatch

import (
	"slices"
	"strings"

	"github.com/tidwall/match"
)

// Separator is the separator of virtual path components.
const Separator = "/"

// Wildcard is the character that turns a pattern into a glob.
const Wildcard = "*"

// IsGlob returns true if the pattern contains a [Wildcard].
func IsGlob(pattern string) bool {
	return strings.Contains(pattern, Wildcard)
}

// Match reports whether path matches pattern.
//
// A pattern without [Wildcard] must be equal to the path. Otherwise it is
// matched as glob against the whole path. The wildcard matches any run of
// characters including [Separator], so "a/*" matches "a/b/c".
func Match(path, pattern string) bool {
	if !IsGlob(pattern) {
		return path == pattern
	}

	return match.Match(path, pattern)
}

// Basedir returns the one of the given dirs that is the closest ancestor
// directory of path. If path itself is one of the dirs, it is returned.
// Returns an empty string if none matches.
//
// The empty dir is the ancestor of every path.
//
//	Basedir("a/b/c", []string{"a", "a/b"}) == "a/b"
func Basedir(path string, dirs []string) string {
	if slices.Contains(dirs, path) {
		return path
	}

	// In reverse lexical order, deeper dirs come before their ancestors.
	for _, dir := range slices.Backward(slices.Sorted(slices.Values(dirs))) {
		if IsAncestor(dir, path) {
			return dir
		}
	}

	return ""
}

// IsAncestor reports whether dir is a proper ancestor directory of path.
func IsAncestor(dir, path string) bool {
	if dir == "" {
		return path != ""
	}

	dir = strings.TrimSuffix(dir, Separator)

	return strings.HasPrefix(path, dir+Separator) && len(path) > len(dir)+1
}

// Ancestors returns all proper ancestor directories of path, starting with
// the top most one.
//
//	Ancestors("a/b/c") == []string{"a", "a/b"}
func Ancestors(path string) []string {
	var ancestors []string

	for idx := range len(path) {
		if path[idx] == Separator[0] && idx > 0 {
			ancestors = append(ancestors, path[:idx])
		}
	}

	return ancestors
}
