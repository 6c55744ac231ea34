package main

import (
	"bytes"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/umemkit/umem"
)

func freshArena(t *testing.T, strategy umem.Strategy) {
	t.Helper()
	arena = umem.New()
	require.Equal(t, umem.StatusOK, initArena(1<<20, int(strategy)))
	t.Cleanup(func() { _ = arena.Close() })
}

func TestInitArenaStatus(t *testing.T) {
	arena = umem.New()
	t.Cleanup(func() { _ = arena.Close() })

	assert.Equal(t, umem.StatusInvalidSize, initArena(8, int(umem.FirstFit)))
	assert.Equal(t, umem.StatusUnknownStrategy, initArena(4096, 0))
	assert.Equal(t, umem.StatusUnknownStrategy, initArena(4096, 9))
	assert.Equal(t, umem.StatusUnknownStrategy, initArena(4096, -1))
	assert.Equal(t, umem.StatusUnknownStrategy, initArena(4096, 300))
	assert.Equal(t, umem.StatusInvalidSize, initArena(^uint64(0), int(umem.FirstFit)))
	assert.False(t, arena.Initialized())

	for _, s := range umem.Strategies() {
		assert.Equal(t, umem.StatusOK, initArena(4096, int(s)), s.String())
		assert.Equal(t, s, arena.Strategy())
	}
}

func TestAllocateAndRelease(t *testing.T) {
	freshArena(t, umem.FirstFit)

	p := allocate(1000)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%8)

	payload := unsafe.Slice((*byte)(p), 1000)
	payload[0], payload[999] = 0xAA, 0xBB

	assert.Equal(t, umem.StatusOK, release(p))
	assert.Equal(t, umem.StatusInvalidPointer, release(p), "double release")

	q := allocate(1000)
	assert.Equal(t, p, q, "exact reuse under first fit")
}

func TestAllocateFailures(t *testing.T) {
	freshArena(t, umem.BestFit)
	assert.Nil(t, allocate(0))
	assert.Nil(t, allocate(2<<20))
	assert.Nil(t, allocate(^uint64(0)))
}

func TestReleaseForeignPointers(t *testing.T) {
	freshArena(t, umem.WorstFit)
	p := allocate(64)
	require.NotNil(t, p)

	var before bytes.Buffer
	dump(&before)

	var local int64
	assert.Equal(t, umem.StatusInvalidPointer, release(nil))
	assert.Equal(t, umem.StatusInvalidPointer, release(unsafe.Pointer(&local)))
	assert.Equal(t, umem.StatusInvalidPointer, release(unsafe.Add(p, 8)))

	var after bytes.Buffer
	dump(&after)
	assert.Equal(t, before.String(), after.String())
}

func TestUninitialized(t *testing.T) {
	arena = umem.New()
	assert.Nil(t, allocate(16))
	assert.Equal(t, umem.StatusNotInitialized, release(nil))

	var out bytes.Buffer
	dump(&out)
	assert.Empty(t, out.String())
}

func TestDump(t *testing.T) {
	freshArena(t, umem.NextFit)
	a := allocate(100)
	require.NotNil(t, a)
	require.NotNil(t, allocate(200))
	require.Equal(t, umem.StatusOK, release(a))

	var out bytes.Buffer
	dump(&out)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "off 0, size 104, free true")
	assert.Contains(t, lines[1], "off 128, size 200, free false")
	assert.Contains(t, lines[2], "off 352, size 1048200, free true")
}
