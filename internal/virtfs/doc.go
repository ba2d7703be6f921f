// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package virtfs provides a read-only [io/fs.FS] view of a registry. Directories
// are derived from the registered paths.
//
// Regular files are not copied into the virtual fs itself. Opening a virtual
// file reads its content.
package virtfs
