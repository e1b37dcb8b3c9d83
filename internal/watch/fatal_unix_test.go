// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import (
	"errors"
	"fmt"
	"syscall"
	"testing"
)

func TestIsFatal(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want bool
	}{
		"watch limit":         {syscall.ENOSPC, true},
		"process descriptors": {syscall.EMFILE, true},
		"system descriptors":  {syscall.ENFILE, true},
		"wrapped":             {fmt.Errorf("inotify_add_watch: %w", syscall.ENOSPC), true},
		"permission":          {syscall.EACCES, false},
		"plain error":         {errors.New("queue overflow"), false},
		"nil":                 {nil, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := isFatal(tt.err); got != tt.want {
				t.Errorf("isFatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
