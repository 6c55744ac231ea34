package format

// Header is the decoded form of one block header.
type Header struct {
	Size uint64
	Next uint64
	Free bool
}

// HasNext reports whether the header links to a successor.
func (h Header) HasNext() bool {
	return h.Next != NoNext
}

// DecodeHeader decodes the header at off. The caller guarantees
// off+HeaderSize <= len(b).
func DecodeHeader(b []byte, off int) Header {
	return Header{
		Size: ReadU64(b, off+SizeOffset),
		Next: ReadU64(b, off+NextOffset),
		Free: ReadU32(b, off+FlagsOffset)&FlagFree != 0,
	}
}

// EncodeHeader writes h at off. The caller guarantees
// off+HeaderSize <= len(b).
func EncodeHeader(b []byte, off int, h Header) {
	var flags uint32
	if h.Free {
		flags |= FlagFree
	}
	PutU64(b, off+SizeOffset, h.Size)
	PutU64(b, off+NextOffset, h.Next)
	PutU32(b, off+FlagsOffset, flags)
	PutU32(b, off+ReservedOffset, 0)
}
