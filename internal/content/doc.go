// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content provides the handles that produce the bytes of virtual
// files and the destinations they are copied into.
//
// A [Content] decides itself whether a copy into a [Dest] must actually write
// bytes. It reports whether it did, so callers can distinguish rewritten
// from unchanged files.
package content
