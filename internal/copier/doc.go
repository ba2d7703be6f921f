// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package copier materializes a registry into a directory on the real file
// system.
//
// The destination directory converges to mirror the registry: files that are
// not registered are removed, as are directories that end up empty.
package copier
