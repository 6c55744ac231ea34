package umem

import "github.com/joshuapare/umemkit/internal/format"

// place marks b allocated for an aligned request of need bytes. When b
// exceeds need by more than a header, the tail is split off as a new free
// block linked in as b's successor; otherwise b is granted whole.
func (a *Allocator) place(b block, need int) block {
	if int(b.Size)-need > format.HeaderSize {
		rem := block{
			off: b.payload() + need,
			Header: format.Header{
				Size: b.Size - uint64(need) - format.HeaderSize,
				Next: b.Next,
				Free: true,
			},
		}
		a.store(rem)
		a.stats.Splits++

		if a.cfg.traceAlloc {
			a.log.Debug("split",
				"off", b.off,
				"size", b.Size,
				"need", need,
				"remainder_off", rem.off,
				"remainder_size", rem.Size,
			)
		}

		b.Size = uint64(need)
		b.Next = uint64(rem.off)
	}
	b.Free = false
	a.store(b)
	return b
}
