//go:build unix

// Package mmfile provides platform-specific helpers for acquiring the
// anonymous memory region that backs an arena.
package mmfile

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// PageSize returns the host page size, or format.DefaultPageSize when the
// host reports an unusable value.
func PageSize() int {
	return pageSizeOr(unix.Getpagesize())
}

// MapAnon requests one private, anonymous, zero-filled read-write mapping of
// size bytes from the operating system. The returned cleanup unmaps it; calling
// cleanup more than once is a no-op.
func MapAnon(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: mmap %d bytes: %w", size, err)
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
