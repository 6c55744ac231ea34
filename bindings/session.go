package main

import (
	"io"
	"math"
	"unsafe"

	"github.com/joshuapare/umemkit/internal/logger"
	"github.com/joshuapare/umemkit/umem"
)

// arena is the instance behind the exported entry points.
var arena = umem.New(umem.WithLogger(logger.L))

func initArena(size uint64, algo int) int {
	if size > math.MaxInt {
		return umem.StatusInvalidSize
	}
	if algo < 0 || algo > math.MaxUint8 {
		return umem.StatusUnknownStrategy
	}
	return umem.Code(arena.Init(int(size), umem.Strategy(algo)))
}

// allocate returns the payload address, or nil when the request cannot be
// satisfied.
func allocate(size uint64) unsafe.Pointer {
	if size > math.MaxInt {
		return nil
	}
	ref, err := arena.Alloc(int(size))
	if err != nil {
		return nil
	}
	b, err := arena.Bytes(ref)
	if err != nil {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

// release frees the block whose payload starts at p. Addresses outside the
// arena map to NilRef and are rejected without touching the directory.
func release(p unsafe.Pointer) int {
	return umem.Code(arena.Release(arena.RefOf(uintptr(p))))
}

func dump(w io.Writer) {
	_ = arena.Dump(w)
}
