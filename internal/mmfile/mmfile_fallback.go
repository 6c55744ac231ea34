//go:build !unix

// Package mmfile provides platform-specific helpers for acquiring the
// anonymous memory region that backs an arena.
package mmfile

import (
	"fmt"
	"os"
)

// PageSize returns the host page size, or format.DefaultPageSize when the
// host reports an unusable value.
func PageSize() int {
	return pageSizeOr(os.Getpagesize())
}

// MapAnon allocates a zeroed heap slice when anonymous mmap is not available.
func MapAnon(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
