// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import "syscall"

// fatalErrnos stop the watcher: inotify ran out of watches (ENOSPC) or the
// process or system ran out of descriptors (EMFILE, ENFILE). Reload can not
// work again until the limit is raised.
var fatalErrnos = []syscall.Errno{syscall.ENOSPC, syscall.EMFILE, syscall.ENFILE}
