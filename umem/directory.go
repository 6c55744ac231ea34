package umem

import (
	"fmt"

	"github.com/joshuapare/umemkit/internal/buf"
	"github.com/joshuapare/umemkit/internal/format"
)

// block is a decoded header together with its offset in the arena.
type block struct {
	off int
	format.Header
}

func (b block) payload() int { return b.off + format.HeaderSize }

func (b block) end() int { return b.payload() + int(b.Size) }

func (b block) info(base uintptr) BlockInfo {
	return BlockInfo{
		Offset: b.off,
		Ref:    Ref(b.payload()),
		Addr:   base + uintptr(b.payload()),
		Size:   int(b.Size),
		Free:   b.Free,
	}
}

// blockAt decodes the header at off and checks it against the arena bounds
// and the directory layout: the payload ends where the successor's header
// begins, and the tail ends exactly at the end of the arena.
func (a *Allocator) blockAt(off int) (block, error) {
	if !format.IsAligned8(off) {
		return block{}, fmt.Errorf("%w: header at 0x%x is not 8-byte aligned", ErrCorrupt, off)
	}
	if _, err := buf.CheckSpan(len(a.region), off, format.HeaderSize); err != nil {
		return block{}, fmt.Errorf("%w: header at 0x%x: %v", ErrCorrupt, off, err)
	}

	b := block{off: off, Header: format.DecodeHeader(a.region, off)}
	if b.Size > uint64(len(a.region)) {
		return block{}, fmt.Errorf("%w: block at 0x%x has size %d beyond arena", ErrCorrupt, off, b.Size)
	}
	end, err := buf.CheckSpan(len(a.region), b.payload(), int(b.Size))
	if err != nil {
		return block{}, fmt.Errorf("%w: payload at 0x%x: %v", ErrCorrupt, b.payload(), err)
	}

	if b.HasNext() {
		if b.Next != uint64(end) {
			return block{}, fmt.Errorf("%w: block at 0x%x links to 0x%x, payload ends at 0x%x",
				ErrCorrupt, off, b.Next, end)
		}
	} else if end != len(a.region) {
		return block{}, fmt.Errorf("%w: tail block at 0x%x ends at 0x%x, arena ends at 0x%x",
			ErrCorrupt, off, end, len(a.region))
	}
	return b, nil
}

// store writes b's header back into the arena.
func (a *Allocator) store(b block) {
	format.EncodeHeader(a.region, b.off, b.Header)
}

// forget scrubs a header that has been merged into a neighbor.
func (a *Allocator) forget(off int) {
	if h, ok := buf.Slice(a.region, off, format.HeaderSize); ok {
		clear(h)
	}
}

// walk visits every block head to tail until fn returns false.
func (a *Allocator) walk(fn func(b block) bool) error {
	off := 0
	for {
		b, err := a.blockAt(off)
		if err != nil {
			return err
		}
		if !fn(b) || !b.HasNext() {
			return nil
		}
		off = int(b.Next)
	}
}

// lookup resolves ref to the allocated block whose payload starts there.
func (a *Allocator) lookup(ref Ref) (block, error) {
	if ref == NilRef {
		return block{}, fmt.Errorf("%w: null", ErrInvalidPointer)
	}
	if ref < format.HeaderSize || ref >= Ref(len(a.region)) {
		return block{}, fmt.Errorf("%w: 0x%x outside arena [0x%x, 0x%x)",
			ErrInvalidPointer, uint64(ref), format.HeaderSize, len(a.region))
	}

	var (
		found block
		ok    bool
	)
	err := a.walk(func(b block) bool {
		if Ref(b.payload()) == ref {
			found, ok = b, true
			return false
		}
		return Ref(b.payload()) < ref
	})
	if err != nil {
		return block{}, err
	}
	if !ok {
		return block{}, fmt.Errorf("%w: 0x%x is not the start of a block", ErrInvalidPointer, uint64(ref))
	}
	if found.Free {
		return block{}, fmt.Errorf("%w: 0x%x is already free", ErrInvalidPointer, uint64(ref))
	}
	return found, nil
}
