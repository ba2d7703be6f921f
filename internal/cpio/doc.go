// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cpio writes a registry as newc CPIO archive stream.
//
// Unlike the zip packer, the stream is always written completely. It suits
// consumers like the Linux kernel that read initramfs archives sequentially.
package cpio
