package umem

import "github.com/joshuapare/umemkit/internal/format"

// coalesce marks b free and merges it with a free successor and a free
// predecessor. It returns the block that now covers b.
//
// The directory has no back-links, so the predecessor is found by walking
// from the head: O(n) per release.
func (a *Allocator) coalesce(b block) (block, error) {
	b.Free = true

	if b.HasNext() {
		next, err := a.blockAt(int(b.Next))
		if err != nil {
			return block{}, err
		}
		if next.Free {
			b.Size += format.HeaderSize + next.Size
			b.Next = next.Next
			a.absorbed(next.off, b.off)
			a.stats.CoalesceForward++
			if a.cfg.traceAlloc {
				a.log.Debug("coalesce forward", "off", b.off, "absorbed", next.off, "size", b.Size)
			}
		}
	}
	a.store(b)

	var (
		prev    block
		hasPrev bool
	)
	err := a.walk(func(cur block) bool {
		if cur.off == b.off {
			return false
		}
		prev, hasPrev = cur, true
		return true
	})
	if err != nil {
		return block{}, err
	}

	if hasPrev && prev.Free {
		prev.Size += format.HeaderSize + b.Size
		prev.Next = b.Next
		a.store(prev)
		a.absorbed(b.off, prev.off)
		a.stats.CoalesceBackward++
		if a.cfg.traceAlloc {
			a.log.Debug("coalesce backward", "off", prev.off, "absorbed", b.off, "size", prev.Size)
		}
		b = prev
	}
	return b, nil
}

// absorbed retires the header at off after it was merged into into, moving
// the NextFit rover along with it.
func (a *Allocator) absorbed(off, into int) {
	if a.rover == off {
		a.rover = into
	}
	a.forget(off)
}
