package umem

// counters holds operation statistics since the last Init.
type counters struct {
	AllocCalls       int   // Total Alloc() calls on an initialized allocator
	AllocFailures    int   // Alloc() calls that returned ErrOutOfMemory
	ReleaseCalls     int   // Total Release() calls on an initialized allocator
	ReleaseRejected  int   // Release() calls rejected with ErrInvalidPointer
	BytesAllocated   int64 // Payload bytes granted (after alignment and absorption)
	BytesReleased    int64 // Payload bytes returned by Release()
	Splits           int   // Blocks split during placement
	CoalesceForward  int   // Merges of a released block with its successor
	CoalesceBackward int   // Merges of a released block into its predecessor
}

// Stats combines the operation counters with a census of the directory.
type Stats struct {
	counters

	Strategy Strategy
	Capacity int

	Blocks      int // blocks in the directory
	FreeBlocks  int
	UsedBytes   int // payload bytes in allocated blocks
	FreeBytes   int // payload bytes in free blocks
	HeaderBytes int // bytes spent on headers
	LargestFree int // payload bytes of the largest free block

	// Fragmentation is 1 - LargestFree/FreeBytes: 0 when all free space is
	// one block, approaching 1 as it is scattered across many small ones.
	Fragmentation float64
}

// Stats returns current statistics.
func (a *Allocator) Stats() (Stats, error) {
	if !a.initialized {
		return Stats{}, ErrNotInitialized
	}
	s := Stats{
		counters: a.stats,
		Strategy: a.strategy,
		Capacity: len(a.region),
	}
	err := a.walk(func(b block) bool {
		s.Blocks++
		s.HeaderBytes += b.payload() - b.off
		if b.Free {
			s.FreeBlocks++
			s.FreeBytes += int(b.Size)
			s.LargestFree = max(s.LargestFree, int(b.Size))
		} else {
			s.UsedBytes += int(b.Size)
		}
		return true
	})
	if err != nil {
		return Stats{}, err
	}
	if s.FreeBytes > 0 {
		s.Fragmentation = 1 - float64(s.LargestFree)/float64(s.FreeBytes)
	}
	return s, nil
}
