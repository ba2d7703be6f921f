// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pathmatch matches virtual paths against patterns.
//
// Virtual paths are always relative and use "/" as separator, independent of
// the host operating system.
package pathmatch
