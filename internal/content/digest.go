// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Digest is the BLAKE3 digest of some content.
type Digest [32]byte

// String returns the hex encoded digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// DigestReader computes the [Digest] of everything read from reader.
func DigestReader(reader io.Reader) (Digest, error) {
	var digest Digest

	hasher := blake3.New()

	if _, err := io.Copy(hasher, reader); err != nil {
		return digest, fmt.Errorf("digest: %w", err)
	}

	copy(digest[:], hasher.Sum(nil))

	return digest, nil
}

func digestOf(openFn func() (io.ReadCloser, error)) (Digest, error) {
	reader, err := openFn()
	if err != nil {
		return Digest{}, err
	}
	defer reader.Close()

	return DigestReader(reader)
}
