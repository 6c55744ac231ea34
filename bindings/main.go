// Command bindings exposes one process-wide allocator through a C ABI.
//
// Build with:
//
//	go build -buildmode=c-shared -o libumem.so ./bindings
//
// The generated header declares:
//
//	int   umeminit(size_t sizeOfRegion, int allocationAlgo);
//	void *umalloc(size_t size);
//	int   ufree(void *ptr);
//	void  umemdump(void);
//
// allocationAlgo takes the strategy codes 1 (best fit), 2 (worst fit),
// 3 (first fit) and 4 (next fit). Status results are 0 on success and
// negative otherwise. None of the entry points are safe for concurrent use.
package main

// main is required for -buildmode=c-shared and never runs.
func main() {}
