// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package copier

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/aibor/vpack/internal/content"
	"github.com/aibor/vpack/internal/pathmatch"
	"github.com/aibor/vpack/internal/registry"
)

const dirMode = 0o755

// Result summarizes what a [FileCopier.Copy] changed in the destination.
type Result struct {
	// Written are the registered paths that were rewritten.
	Written []string
	// Unchanged are the registered paths that were considered current.
	Unchanged []string
	// RemovedFiles are the destination relative paths of removed files.
	RemovedFiles []string
	// RemovedDirs are the destination relative paths of removed
	// directories.
	RemovedDirs []string
}

// FileCopier is a [registry.Registry] that can be copied into a directory.
type FileCopier struct {
	*registry.Registry
}

// New creates a new [FileCopier] with an empty registry.
func New() *FileCopier {
	return &FileCopier{Registry: registry.New()}
}

// Copy copies all registered files into the destination directory.
//
// The destination is created if it does not exist. Files in the destination
// that are not registered are removed afterwards, and so are all directories
// that are empty then. The destination directory itself is kept.
//
// Failures may leave the destination partially updated.
func (c *FileCopier) Copy(destination string, skipIfOlder bool) (*Result, error) {
	if err := prepareDestination(destination); err != nil {
		return nil, err
	}

	result := &Result{}
	registered := make(map[string]struct{}, c.Len())

	for path, src := range c.All() {
		target := filepath.Join(destination, filepath.FromSlash(path))

		written, err := c.copyFile(src, destination, path, target, skipIfOlder)
		if err != nil {
			return result, err
		}

		if written {
			result.Written = append(result.Written, path)
		} else {
			result.Unchanged = append(result.Unchanged, path)
		}

		registered[target] = struct{}{}
	}

	if err := removeStale(destination, registered, result); err != nil {
		return result, err
	}

	slog.Debug("Copied registry",
		slog.String("destination", destination),
		slog.Int("written", len(result.Written)),
		slog.Int("unchanged", len(result.Unchanged)),
		slog.Int("removed_files", len(result.RemovedFiles)),
		slog.Int("removed_dirs", len(result.RemovedDirs)),
	)

	return result, nil
}

func prepareDestination(destination string) error {
	info, err := os.Stat(destination)
	if errors.Is(err, fs.ErrNotExist) {
		err = os.MkdirAll(destination, dirMode)
		if err != nil {
			return fmt.Errorf("create destination: %w", err)
		}

		return nil
	} else if err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	if !info.IsDir() {
		return &PathError{Op: "copy", Path: destination, Err: ErrNotDir}
	}

	return nil
}

func (c *FileCopier) copyFile(
	src content.Content,
	destination string,
	path string,
	target string,
	skipIfOlder bool,
) (bool, error) {
	if err := c.clearTarget(destination, path, target); err != nil {
		return false, err
	}

	dest := content.NewFileDest(target)

	written, err := src.CopyTo(dest, skipIfOlder)

	closeErr := dest.Close()
	if err == nil && closeErr != nil {
		err = closeErr
	}

	if err != nil {
		return false, fmt.Errorf("copy %s: %w", path, err)
	}

	return written, nil
}

// clearTarget makes sure the target's parent directories exist and that
// neither the target nor any of its parents are in the way, as leftovers of
// earlier copies with different file trees.
func (c *FileCopier) clearTarget(destination, path, target string) error {
	for _, ancestor := range pathmatch.Ancestors(path) {
		dir := filepath.Join(destination, filepath.FromSlash(ancestor))

		info, err := os.Lstat(dir)
		if err != nil || info.IsDir() {
			continue
		}

		slog.Debug("Removing file in place of directory", slog.String("path", dir))

		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("remove stale file: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(target), dirMode); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	info, err := os.Lstat(target)
	if err != nil || !info.IsDir() {
		return nil
	}

	if c.Match(path+pathmatch.Separator) != nil {
		return &PathError{Op: "copy", Path: target, Err: ErrPathConflict}
	}

	slog.Debug("Removing directory in place of file", slog.String("path", target))

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove stale directory: %w", err)
	}

	return nil
}

// removeStale removes all files in destination that are not registered and
// all directories that are empty afterwards.
func removeStale(
	destination string,
	registered map[string]struct{},
	result *Result,
) error {
	var (
		stale []string
		dirs  []string
	)

	err := filepath.WalkDir(destination, func(
		path string,
		entry fs.DirEntry,
		err error,
	) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path != destination {
				dirs = append(dirs, path)
			}

			return nil
		}

		if _, exists := registered[path]; !exists {
			stale = append(stale, path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("walk destination: %w", err)
	}

	for _, path := range stale {
		slog.Debug("Removing stale file", slog.String("path", path))

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale file: %w", err)
		}

		result.RemovedFiles = append(result.RemovedFiles, relPath(destination, path))
	}

	// WalkDir walks in lexical order, so children come after their parents.
	for _, dir := range slices.Backward(dirs) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("read directory: %w", err)
		}

		if len(entries) > 0 {
			continue
		}

		slog.Debug("Removing empty directory", slog.String("path", dir))

		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("remove empty directory: %w", err)
		}

		result.RemovedDirs = append(result.RemovedDirs, relPath(destination, dir))
	}

	return nil
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}

	return filepath.ToSlash(rel)
}
