// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package virtfs

import (
	"io/fs"
	"iter"
	"strings"

	"github.com/aibor/vpack/internal/content"
	"github.com/aibor/vpack/internal/pathmatch"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

var _ fs.FS = (*FS)(nil)

// FS is a read-only [fs.FS] of regular files and the directories they are
// in.
type FS struct {
	root directory
}

// New creates a new [FS] with all given entries. Parent directories are
// created as needed.
//
// It fails with [ErrFileExist] if a path is registered as file and also is
// the parent directory of another path.
func New(entries iter.Seq2[string, content.Content]) (*FS, error) {
	fsys := &FS{
		root: make(directory),
	}

	for name, c := range entries {
		if err := fsys.add(name, regularFile{c}); err != nil {
			return nil, &PathError{Op: "add", Path: name, Err: err}
		}
	}

	return fsys, nil
}

// Open opens the named file.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) Open(name string) (fs.File, error) {
	dEntry, err := fsys.find(name)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	file, err := dEntry.file.open(dEntry)
	if err != nil {
		return nil, &PathError{Op: "open", Path: name, Err: err}
	}

	return file, nil
}

func (fsys *FS) mkdirAll(name string) (*directory, error) {
	dir := &fsys.root

	if name == "" {
		return dir, nil
	}

	for component := range strings.SplitSeq(name, pathmatch.Separator) {
		next, exists := (*dir)[component]
		if !exists {
			next = &directory{}
			(*dir)[component] = next
		}

		nextDir, isDir := next.(*directory)
		if !isDir {
			return nil, ErrFileExist
		}

		dir = nextDir
	}

	return dir, nil
}

func (fsys *FS) add(name string, file file) error {
	if !fs.ValidPath(name) || name == "." {
		return ErrFileInvalid
	}

	dirName, fileName := "", name
	if idx := strings.LastIndex(name, pathmatch.Separator); idx >= 0 {
		dirName, fileName = name[:idx], name[idx+1:]
	}

	parent, err := fsys.mkdirAll(dirName)
	if err != nil {
		return err
	}

	return parent.add(fileName, file)
}

func (fsys *FS) find(name string) (dirEntry, error) {
	dEntry := dirEntry{name, &fsys.root}

	if name == "." {
		return dEntry, nil
	}

	if !fs.ValidPath(name) {
		return dirEntry{}, ErrFileInvalid
	}

	for component := range strings.SplitSeq(name, pathmatch.Separator) {
		dir, isDir := dEntry.file.(*directory)
		if !isDir {
			return dirEntry{}, ErrFileNotExist
		}

		next, exists := (*dir)[component]
		if !exists {
			return dirEntry{}, ErrFileNotExist
		}

		dEntry = dirEntry{name, next}
	}

	return dEntry, nil
}
