// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive reads and writes zip archives on the level of compressed
// entries.
//
// Entries are kept with their compressed bytes, so they can be moved from
// one archive into another without decompressing and recompressing them.
// Fresh entries are created with a [Deflater].
package archive
