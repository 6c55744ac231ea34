package mmfile

import "github.com/joshuapare/umemkit/internal/format"

// pageSizeOr returns n when it is a usable page size (a positive power of
// two) and format.DefaultPageSize otherwise.
func pageSizeOr(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		return format.DefaultPageSize
	}
	return n
}
