// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package packer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/aibor/vpack/internal/archive"
	"github.com/aibor/vpack/internal/content"
	"github.com/aibor/vpack/internal/registry"
)

var _ content.Content = (*Packer)(nil)

// Result summarizes a [Packer.Copy].
type Result struct {
	// Written are the paths that were compressed freshly.
	Written []string
	// Reused are the paths whose prior compressed entry was kept.
	Reused []string
}

// Packer is a [registry.Registry] that can be copied into a zip archive.
//
// A Packer is a [content.Content] itself, so an archive can be registered
// in another registry, like the one of a directory copier.
type Packer struct {
	*registry.Registry

	options archive.Options
	preload []string
}

// New creates a new [Packer] with an empty registry.
func New(options archive.Options) *Packer {
	return &Packer{
		Registry: registry.New(),
		options:  options,
	}
}

// Preload appends paths to the list of entries that are placed first in the
// archive, in the given order. The paths are not validated until the archive
// is written. Paths that are not registered then are skipped.
func (p *Packer) Preload(paths ...string) {
	p.preload = append(p.preload, paths...)
}

// Preloaded returns the paths declared with [Packer.Preload].
func (p *Packer) Preloaded() []string {
	return slices.Clone(p.preload)
}

// Copy writes the archive to the destination file.
//
// An existing destination is read first. Its entries are reused for paths
// whose content does not write. A destination that is not a valid archive is
// treated like a missing one. The destination is rewritten in place, so a
// failure leaves an unusable archive.
func (p *Packer) Copy(destination string, skipIfOlder bool) (*Result, error) {
	prior, err := os.ReadFile(destination)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read prior archive: %w", err)
	}

	file, err := os.Create(destination)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	result, err := p.PackTo(prior, file, skipIfOlder)

	closeErr := file.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("close archive: %w", closeErr)
	}

	if err != nil {
		return nil, err
	}

	slog.Debug("Packed registry",
		slog.String("destination", destination),
		slog.Int("written", len(result.Written)),
		slog.Int("reused", len(result.Reused)),
	)

	return result, nil
}

// CopyTo writes the archive into dest. The current content of dest is used
// as prior archive. The archive is always rewritten, so it returns true
// unless it fails.
func (p *Packer) CopyTo(dest content.Dest, skipIfOlder bool) (bool, error) {
	var prior []byte

	if dest.Exists() {
		reader, err := dest.Open()
		if err != nil {
			return false, &PathError{Op: "open", Path: dest.Name(), Err: err}
		}

		prior, err = io.ReadAll(reader)
		reader.Close()

		if err != nil {
			return false, &PathError{Op: "read", Path: dest.Name(), Err: err}
		}
	}

	var buf bytes.Buffer

	result, err := p.PackTo(prior, &buf, skipIfOlder)
	if err != nil {
		return false, err
	}

	if _, err := dest.Write(buf.Bytes()); err != nil {
		return false, &PathError{Op: "write", Path: dest.Name(), Err: err}
	}

	slog.Debug("Packed nested archive",
		slog.String("destination", dest.Name()),
		slog.Int("written", len(result.Written)),
		slog.Int("reused", len(result.Reused)),
	)

	return true, nil
}

// Open is not supported, as the archive only exists relative to a prior
// one. Use [Packer.CopyTo] instead.
func (*Packer) Open() (io.ReadCloser, error) {
	return nil, &PathError{Op: "open", Path: "archive", Err: ErrUnsupported}
}

// PackTo writes the archive into out, reusing entries of the prior archive
// data. Invalid prior data is treated like no prior archive.
func (p *Packer) PackTo(prior []byte, out io.Writer, skipIfOlder bool) (*Result, error) {
	priorEntries := archive.Index(archive.Read(prior))
	writer := archive.NewWriter(out, p.options)
	result := &Result{}

	for path, src := range p.All() {
		sink := newEntrySink(path, priorEntries[path], p.options.Compress)

		if _, err := src.CopyTo(sink, skipIfOlder); err != nil {
			return nil, fmt.Errorf("copy %s: %w", path, err)
		}

		entry, err := sink.entry()
		if err != nil {
			return nil, err
		}

		if err := writer.Add(entry); err != nil {
			return nil, fmt.Errorf("add entry: %w", err)
		}

		if sink.writing() {
			result.Written = append(result.Written, path)
		} else {
			result.Reused = append(result.Reused, path)
		}
	}

	if len(p.preload) > 0 {
		writer.Preload(p.preload)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}

	return result, nil
}
