// Package format describes the in-arena layout of block headers. The goal is
// to keep the byte-level encoding in one place so the allocator and the
// verifier agree on where every field lives.
package format

const (
	// HeaderSize is the number of bytes used by the block header preceding
	// every payload (free or in-use). It is a multiple of Alignment so that
	// a payload following a header at an aligned offset is itself aligned.
	//
	// Layout (little-endian):
	//   0x00  size   uint64  payload bytes, excluding the header
	//   0x08  next   uint64  offset of the next header, NoNext at the tail
	//   0x10  flags  uint32  FlagFree when the block is unallocated
	//   0x14  -      uint32  reserved, always zero
	HeaderSize = 0x18

	// Field offsets within the header.
	SizeOffset     = 0x00
	NextOffset     = 0x08
	FlagsOffset    = 0x10
	ReservedOffset = 0x14

	// Alignment is the required alignment of payload sizes and addresses.
	Alignment = 8

	// AlignmentMask is the bitmask used for aligning to 8-byte boundaries (Alignment - 1).
	AlignmentMask = Alignment - 1

	// DefaultPageSize is used when the host page size cannot be determined.
	DefaultPageSize = 0x1000
)

const (
	// NoNext marks the tail of the block directory.
	NoNext = ^uint64(0)

	// FlagFree is set in the flags field of an unallocated block.
	FlagFree uint32 = 1 << 0
)
