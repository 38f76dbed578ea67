//go:build linux

package trie

import "golang.org/x/sys/unix"

// adviseWillNeed hints the kernel to start reading the mapping in.
// Best-effort: errors are ignored, the mapping works without it.
func adviseWillNeed(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_WILLNEED)
}
