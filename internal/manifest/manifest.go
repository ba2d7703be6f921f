// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aibor/vpack/internal/archive"
	"github.com/aibor/vpack/internal/content"
	"github.com/aibor/vpack/internal/packer"
)

// DefaultFilename is the manifest file name used if none is given.
const DefaultFilename = "vpack.yaml"

var (
	// ErrEntryPathMissing is returned if an entry has no path.
	ErrEntryPathMissing = errors.New("entry path missing")

	// ErrEntrySourceAmbiguous is returned if an entry has not exactly one of
	// source, content and archive.
	ErrEntrySourceAmbiguous = errors.New("entry needs exactly one of source, content and archive")
)

// Entry describes a single virtual file.
type Entry struct {
	// Path is the virtual path of the file.
	Path string `yaml:"path"`
	// Source is the file to copy the content from. Relative paths are
	// relative to the manifest file.
	Source string `yaml:"source,omitempty"`
	// Content is the literal content of the file.
	Content *string `yaml:"content,omitempty"`
	// Archive describes a zip archive that is packed as the file. Its
	// relative sources are relative to the manifest file as well.
	Archive *Manifest `yaml:"archive,omitempty"`
}

func (e Entry) sources() int {
	var count int

	for _, set := range []bool{e.Source != "", e.Content != nil, e.Archive != nil} {
		if set {
			count++
		}
	}

	return count
}

// Manifest describes a registry and how to pack it.
type Manifest struct {
	// Entries are added in the given order.
	Entries []Entry `yaml:"entries"`
	// Remove patterns are applied after all entries are added.
	Remove []string `yaml:"remove,omitempty"`
	// Preload are the paths to put first into archives.
	Preload []string `yaml:"preload,omitempty"`
	// Compress archive entries. Defaults to true.
	Compress *bool `yaml:"compress,omitempty"`
	// Optimize the archive layout for sequential access.
	Optimize bool `yaml:"optimize,omitempty"`

	baseDir string
}

// Registry is what a [Manifest] is applied to.
type Registry interface {
	Add(path string, c content.Content) error
	Remove(pattern string) error
}

// Load reads the manifest from the given path and validates it.
func Load(path string) (*Manifest, error) {
	if path == "" {
		path = DefaultFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	manifest, err := Parse(contents)
	if err != nil {
		return nil, err
	}

	manifest.baseDir = filepath.Dir(path)

	return manifest, nil
}

// Parse parses and validates the manifest. Relative sources are relative to
// the current working directory.
func Parse(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	if err := Validate(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// Validate checks that every entry is complete.
func Validate(manifest *Manifest) error {
	var errs []error

	for idx, entry := range manifest.Entries {
		if entry.Path == "" {
			errs = append(errs, fmt.Errorf("entry %d: %w", idx, ErrEntryPathMissing))
		}

		if entry.sources() != 1 {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", idx, entry.Path, ErrEntrySourceAmbiguous))
		}

		if entry.Archive != nil {
			if err := Validate(entry.Archive); err != nil {
				errs = append(errs, fmt.Errorf("entry %d (%s): %w", idx, entry.Path, err))
			}
		}
	}

	return errors.Join(errs...)
}

// Options returns the archive options.
func (m *Manifest) Options() archive.Options {
	return archive.Options{
		Compress: m.Compress == nil || *m.Compress,
		Optimize: m.Optimize,
	}
}

// Apply adds all entries to the registry and then removes all remove
// patterns. It continues on conflicts and returns all of them.
func (m *Manifest) Apply(reg Registry) error {
	var errs []error

	for _, entry := range m.Entries {
		c, err := m.content(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := reg.Add(entry.Path, c); err != nil {
			errs = append(errs, err)
		}
	}

	for _, pattern := range m.Remove {
		if err := reg.Remove(pattern); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

//nolint:ireturn
func (m *Manifest) content(entry Entry) (content.Content, error) {
	switch {
	case entry.Content != nil:
		return content.NewGenerated([]byte(*entry.Content)), nil
	case entry.Archive != nil:
		return m.archive(entry.Path, entry.Archive)
	}

	source := entry.Source
	if !filepath.IsAbs(source) {
		source = filepath.Join(m.baseDir, source)
	}

	return content.NewFile(source), nil
}

func (m *Manifest) archive(path string, nested *Manifest) (*packer.Packer, error) {
	nested.baseDir = m.baseDir

	archivePacker := packer.New(nested.Options())
	if err := nested.Apply(archivePacker); err != nil {
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}

	archivePacker.Preload(nested.Preload...)

	return archivePacker, nil
}
