//go:build cgo

package main

/*
#include <stddef.h>
*/
import "C"

import (
	"os"
	"unsafe"
)

//export umeminit
func umeminit(sizeOfRegion C.size_t, allocationAlgo C.int) C.int {
	return C.int(initArena(uint64(sizeOfRegion), int(allocationAlgo)))
}

//export umalloc
func umalloc(size C.size_t) unsafe.Pointer {
	return allocate(uint64(size))
}

//export ufree
func ufree(ptr unsafe.Pointer) C.int {
	return C.int(release(ptr))
}

//export umemdump
func umemdump() {
	dump(os.Stdout)
}
