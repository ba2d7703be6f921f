// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package registry provides the ordered mapping of virtual file paths to the
// [content.Content] that produces them.
//
// A [Registry] is populated once and then materialized, either into a
// directory (see package copier) or into an archive (see package packer).
package registry
