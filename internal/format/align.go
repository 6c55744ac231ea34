package format

// Align8 returns n aligned up to the next 8-byte boundary.
// Used for payload sizes, which must keep every header 8-byte aligned.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
//	Align8(16) = 16
func Align8(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// AlignPage returns n aligned up to the next multiple of pageSize.
// pageSize must be a power of two.
//
// Example (4 KiB pages):
//
//	AlignPage(1, 4096)    = 4096
//	AlignPage(4096, 4096) = 4096
//	AlignPage(4097, 4096) = 8192
func AlignPage(n, pageSize int) int {
	mask := pageSize - 1
	return (n + mask) & ^mask
}

// IsAligned8 reports whether n is a multiple of Alignment.
func IsAligned8(n int) bool {
	return n&AlignmentMask == 0
}
