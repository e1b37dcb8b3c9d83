// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// fatalErrnos stop the watcher. ReadDirectoryChangesW has no watch limit,
// but running out of handles (4), losing the directory handle (6) or failing
// to allocate the notification buffer (8) leaves it unusable.
var fatalErrnos = []syscall.Errno{4, 6, 8}
