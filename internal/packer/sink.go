// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package packer

import (
	"bytes"
	"io"
	"time"

	"github.com/aibor/vpack/internal/archive"
	"github.com/aibor/vpack/internal/content"
)

// sinkState is the state of an [entrySink].
type sinkState int

const (
	// statePending is bound to the prior entry, if any. Nothing has been
	// written.
	statePending sinkState = iota

	// stateWriting collects fresh data. There is no way back to
	// [statePending].
	stateWriting
)

var _ content.Dest = (*entrySink)(nil)

// entrySink is the [content.Dest] for a single archive entry.
//
// It starts pending, bound to the compressed entry of the prior archive.
// If the content does not write, that entry is kept as it is. The first
// write switches it to writing: the prior entry is dropped and everything
// written is compressed into a new entry.
type entrySink struct {
	name     string
	compress bool
	state    sinkState
	prior    *archive.Entry
	deflater *archive.Deflater
	started  time.Time
}

func newEntrySink(name string, prior *archive.Entry, compress bool) *entrySink {
	return &entrySink{
		name:     name,
		compress: compress,
		prior:    prior,
	}
}

func (s *entrySink) Name() string {
	return s.name
}

func (s *entrySink) Exists() bool {
	switch s.state {
	case statePending:
		return s.prior != nil
	default:
		return true
	}
}

func (s *entrySink) ModTime() time.Time {
	switch s.state {
	case statePending:
		if s.prior == nil {
			return time.Time{}
		}

		return s.prior.Modified()
	default:
		return s.started
	}
}

func (s *entrySink) Open() (io.ReadCloser, error) {
	switch s.state {
	case statePending:
		if s.prior == nil {
			return nil, &PathError{Op: "open", Path: s.name, Err: ErrNotExist}
		}

		//nolint:wrapcheck
		return s.prior.Open()
	default:
		return io.NopCloser(bytes.NewReader(s.deflater.Bytes())), nil
	}
}

func (s *entrySink) Write(p []byte) (int, error) {
	if s.state == statePending {
		deflater, err := archive.NewDeflater(s.compress)
		if err != nil {
			return 0, &PathError{Op: "write", Path: s.name, Err: err}
		}

		s.state = stateWriting
		s.prior = nil
		s.deflater = deflater
		s.started = time.Now()
	}

	//nolint:wrapcheck
	return s.deflater.Write(p)
}

// writing returns true if the sink switched to fresh data.
func (s *entrySink) writing() bool {
	return s.state == stateWriting
}

// entry returns the resulting entry: the prior one if still pending, the
// freshly compressed one otherwise.
func (s *entrySink) entry() (*archive.Entry, error) {
	switch s.state {
	case statePending:
		if s.prior == nil {
			return nil, &PathError{Op: "pack", Path: s.name, Err: ErrNoContent}
		}

		return s.prior, nil
	default:
		//nolint:wrapcheck
		return s.deflater.Entry(s.name, s.started)
	}
}
