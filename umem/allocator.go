package umem

import (
	"fmt"

	"github.com/joshuapare/umemkit/internal/format"
)

// Alloc reserves at least size bytes and returns the payload's Ref.
//
// The request is rounded up to a multiple of 8. A zero or negative size, or
// one no single free block can hold, yields NilRef and ErrOutOfMemory even
// when the free bytes summed across blocks would suffice.
func (a *Allocator) Alloc(size int) (Ref, error) {
	if !a.initialized {
		return NilRef, ErrNotInitialized
	}
	a.stats.AllocCalls++

	if size <= 0 {
		a.stats.AllocFailures++
		return NilRef, fmt.Errorf("%w: zero-length request", ErrOutOfMemory)
	}
	if size > len(a.region)-format.HeaderSize {
		a.stats.AllocFailures++
		return NilRef, fmt.Errorf("%w: request %d exceeds arena capacity %d", ErrOutOfMemory, size, len(a.region))
	}
	need := format.Align8(size)

	b, ok, err := a.find(need)
	if err != nil {
		return NilRef, err
	}
	if !ok {
		a.stats.AllocFailures++
		if a.cfg.traceAlloc {
			a.log.Debug("no fit", "size", size, "need", need, "strategy", a.strategy.String())
		}
		return NilRef, fmt.Errorf("%w: need %d bytes (%s)", ErrOutOfMemory, need, a.strategy)
	}

	b = a.place(b, need)
	if b.HasNext() {
		a.rover = int(b.Next)
	} else {
		a.rover = 0
	}
	a.stats.BytesAllocated += int64(b.Size)

	if a.cfg.traceAlloc {
		a.log.Debug("alloc", "size", size, "off", b.off, "granted", b.Size)
	}
	return Ref(b.payload()), nil
}

// Release returns the block whose payload starts at ref to the free pool and
// merges it with free neighbors.
//
// A null ref, one outside the arena, one that is not the start of a block
// payload, or one already free is rejected with ErrInvalidPointer and leaves
// the directory untouched.
func (a *Allocator) Release(ref Ref) error {
	if !a.initialized {
		return ErrNotInitialized
	}
	a.stats.ReleaseCalls++

	b, err := a.lookup(ref)
	if err != nil {
		a.stats.ReleaseRejected++
		a.log.Warn("release rejected", "ref", uint64(ref), "error", err)
		return err
	}
	a.stats.BytesReleased += int64(b.Size)

	if _, err := a.coalesce(b); err != nil {
		return err
	}
	return nil
}

// Bytes returns the payload of the allocated block at ref. The slice length
// is the block's usable size, which is at least the size passed to Alloc.
// It aliases the arena and must not be used after the block is released or
// the allocator is reinitialized.
func (a *Allocator) Bytes(ref Ref) ([]byte, error) {
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	b, err := a.lookup(ref)
	if err != nil {
		return nil, err
	}
	return a.region[b.payload():b.end():b.end()], nil
}

// Usable returns the payload size of the allocated block at ref.
func (a *Allocator) Usable(ref Ref) (int, error) {
	if !a.initialized {
		return 0, ErrNotInitialized
	}
	b, err := a.lookup(ref)
	if err != nil {
		return 0, err
	}
	return int(b.Size), nil
}
