// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package packer materializes a registry into a single zip archive.
//
// When the destination archive exists already, entries whose content is
// current are taken over with their compressed bytes as they are. Only
// changed entries are compressed again.
//
// A [Packer] is a content itself and can be registered in another registry,
// for example to place an archive in a directory that is copied.
package packer
