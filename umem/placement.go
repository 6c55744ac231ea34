package umem

// fits reports whether b can satisfy an aligned request of need bytes.
func fits(b block, need int) bool {
	return b.Free && int(b.Size) >= need
}

// find selects a free block of at least need bytes under the active
// strategy. ok is false when no block qualifies.
func (a *Allocator) find(need int) (b block, ok bool, err error) {
	switch a.strategy {
	case FirstFit:
		return a.findFirst(need)
	case BestFit:
		return a.findBest(need)
	case WorstFit:
		return a.findWorst(need)
	case NextFit:
		return a.findNext(need)
	default:
		a.log.Warn("unknown placement strategy", "strategy", uint8(a.strategy), "need", need)
		return block{}, false, nil
	}
}

func (a *Allocator) findFirst(need int) (found block, ok bool, err error) {
	err = a.walk(func(b block) bool {
		if fits(b, need) {
			found, ok = b, true
			return false
		}
		return true
	})
	return found, ok, err
}

// findBest keeps the first block seen with the smallest sufficient size.
func (a *Allocator) findBest(need int) (best block, ok bool, err error) {
	err = a.walk(func(b block) bool {
		if fits(b, need) && (!ok || b.Size < best.Size) {
			best, ok = b, true
		}
		return true
	})
	return best, ok, err
}

// findWorst keeps the first block seen with the largest sufficient size.
func (a *Allocator) findWorst(need int) (worst block, ok bool, err error) {
	err = a.walk(func(b block) bool {
		if fits(b, need) && (!ok || b.Size > worst.Size) {
			worst, ok = b, true
		}
		return true
	})
	return worst, ok, err
}

// findNext scans from the rover to the tail, wraps to the head, and gives up
// once it is back where it started.
func (a *Allocator) findNext(need int) (block, bool, error) {
	start := a.rover
	off := start
	for {
		b, err := a.blockAt(off)
		if err != nil {
			return block{}, false, err
		}
		if fits(b, need) {
			return b, true, nil
		}
		if b.HasNext() {
			off = int(b.Next)
		} else {
			off = 0
		}
		if off == start {
			return block{}, false, nil
		}
	}
}
