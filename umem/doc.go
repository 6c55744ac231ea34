// Package umem provides a user-space dynamic memory allocator over one
// fixed-capacity backing region.
//
// # Overview
//
// An Allocator owns a single anonymous, zero-filled memory mapping whose
// capacity is fixed at Init time (rounded up to the host page size). The
// region is carved into blocks, each prefixed by a 24-byte header that records
// the payload size, an allocation flag, and the offset of the next header.
// Headers are linked in ascending address order and together cover the whole
// region; this chain is the block directory.
//
// # Placement Strategies
//
// Every Alloc scans the directory linearly under the strategy chosen at Init:
//
//   - FirstFit: first free block, head to tail, that is large enough
//   - BestFit:  smallest sufficient free block (earliest wins a tie)
//   - WorstFit: largest sufficient free block (earliest wins a tie)
//   - NextFit:  like FirstFit, but resumes after the previously placed block
//     and wraps around once
//
// There is no size-class index; every strategy is O(number of blocks).
//
// # Splitting and Coalescing
//
// Requests are rounded up to a multiple of 8. A chosen block larger than the
// request by more than one header is split and the tail becomes a new free
// block; otherwise the whole block is granted. Release marks the block free,
// absorbs a free successor, then walks from the head to find the predecessor
// and merges into it when it is free. After every Release no two link-adjacent
// blocks are free.
//
// # Refs
//
// Alloc returns a Ref, the payload offset from the start of the region.
// NilRef (0) never names a payload because offset 0 holds the head header.
// Use Bytes to obtain the payload slice and Addr for its absolute address.
//
// # Usage Example
//
//	a, err := umem.Open(1<<20, umem.FirstFit)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	ref, err := a.Alloc(1000)
//	if err != nil {
//	    return err // errors.Is(err, umem.ErrOutOfMemory)
//	}
//	p, _ := a.Bytes(ref)
//	copy(p, payload)
//
//	_ = a.Release(ref)
//	_ = a.Dump(os.Stdout)
//
// # Concurrency
//
// An Allocator is not safe for concurrent use. Callers sharing one across
// goroutines must provide their own exclusion.
package umem
