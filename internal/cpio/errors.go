// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cpio

import "errors"

// ErrNoContent is returned if a content did not write anything.
var ErrNoContent = errors.New("content wrote nothing")
