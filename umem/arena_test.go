package umem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/umemkit/internal/format"
)

func TestInit_WholeRegionFreeBlock(t *testing.T) {
	a := newTestAllocator(t, 1<<20, FirstFit)

	require.True(t, a.Initialized())
	assert.Equal(t, 1<<20, a.Capacity())
	assert.Equal(t, FirstFit, a.Strategy())
	assert.Equal(t, []shape{{Off: 0, Size: 1<<20 - format.HeaderSize, Free: true}}, shapes(t, a))
	assertInvariants(t, a)
}

func TestInit_RoundsUpToPageSize(t *testing.T) {
	a := newTestAllocator(t, 5000, BestFit)

	assert.Equal(t, 8192, a.Capacity())
	assert.Equal(t, []shape{{Off: 0, Size: 8192 - format.HeaderSize, Free: true}}, shapes(t, a))
}

func TestInit_HostPageSize(t *testing.T) {
	a, err := Open(format.HeaderSize, FirstFit)
	require.NoError(t, err)
	defer a.Close()

	ps := a.Capacity()
	assert.Positive(t, ps)
	assert.Zero(t, ps&(ps-1), "capacity of a minimal request should be one host page")
	assertInvariants(t, a)
}

func TestInit_InvalidSize(t *testing.T) {
	for _, capacity := range []int{-1, 0, 1, format.HeaderSize - 1} {
		m := &heapMapper{}
		a := New(WithMapper(m.Map))

		err := a.Init(capacity, FirstFit)
		require.ErrorIs(t, err, ErrInvalidSize, "capacity %d", capacity)
		assert.Equal(t, StatusInvalidSize, Code(err))
		assert.Zero(t, m.maps, "no mapping may be attempted for capacity %d", capacity)
		assert.False(t, a.Initialized())
	}
}

func TestInit_MinimumCapacity(t *testing.T) {
	a := newTestAllocator(t, format.HeaderSize, FirstFit)
	assert.Equal(t, testPageSize, a.Capacity())
}

func TestInit_BackendFailure(t *testing.T) {
	m := &heapMapper{fail: errMapDenied}
	a := New(WithMapper(m.Map))

	err := a.Init(4096, FirstFit)
	require.ErrorIs(t, err, ErrBackendFailure)
	require.ErrorIs(t, err, errMapDenied)
	assert.Equal(t, StatusBackendFailure, Code(err))
	assert.False(t, a.Initialized())

	_, err = a.Alloc(8)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestInit_ShortMappingIsBackendFailure(t *testing.T) {
	unmapped := false
	short := func(size int) ([]byte, func() error, error) {
		return make([]byte, size/2), func() error { unmapped = true; return nil }, nil
	}
	_, err := Open(8192, FirstFit, WithMapper(short), WithPageSize(testPageSize))
	require.ErrorIs(t, err, ErrBackendFailure)
	assert.True(t, unmapped, "short region must be released")
}

func TestInit_UnknownStrategy(t *testing.T) {
	m := &heapMapper{}
	_, err := Open(4096, Strategy(0), WithMapper(m.Map))
	require.ErrorIs(t, err, ErrUnknownStrategy)
	_, err = Open(4096, Strategy(9), WithMapper(m.Map))
	require.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Zero(t, m.maps)
}

// Reinitializing must release the previous arena before mapping a new one.
func TestInit_ReinitReleasesPreviousRegion(t *testing.T) {
	m := &heapMapper{}
	a := newTestAllocator(t, 4096, FirstFit, WithMapper(m.Map))
	mustAlloc(t, a, 100)
	require.Equal(t, 1, m.maps)
	require.Zero(t, m.unmaps)

	require.NoError(t, a.Init(8192, WorstFit))
	assert.Equal(t, 2, m.maps)
	assert.Equal(t, 1, m.unmaps, "old arena must be released")
	assert.Equal(t, WorstFit, a.Strategy())
	assert.Equal(t, []shape{{Off: 0, Size: 8192 - format.HeaderSize, Free: true}}, shapes(t, a))

	st, err := a.Stats()
	require.NoError(t, err)
	assert.Zero(t, st.AllocCalls, "counters reset on init")

	require.NoError(t, a.Close())
	assert.Equal(t, 2, m.unmaps)
}

func TestInit_ReinitInvalidSizeKeepsArena(t *testing.T) {
	m := &heapMapper{}
	a := newTestAllocator(t, 4096, FirstFit, WithMapper(m.Map))
	ref := mustAlloc(t, a, 64)

	require.ErrorIs(t, a.Init(1, FirstFit), ErrInvalidSize)
	assert.True(t, a.Initialized())
	assert.Zero(t, m.unmaps)
	_, err := a.Bytes(ref)
	assert.NoError(t, err)
}

func TestInit_ReinitBackendFailureLeavesUninitialized(t *testing.T) {
	m := &heapMapper{}
	a := newTestAllocator(t, 4096, FirstFit, WithMapper(m.Map))

	m.fail = errMapDenied
	require.ErrorIs(t, a.Init(4096, FirstFit), ErrBackendFailure)
	assert.Equal(t, 1, m.unmaps, "previous arena released before the failed request")
	assert.False(t, a.Initialized())
}

func TestClose(t *testing.T) {
	m := &heapMapper{}
	a := New(WithMapper(m.Map))
	require.NoError(t, a.Close(), "closing an uninitialized allocator is a no-op")

	require.NoError(t, a.Init(4096, NextFit))
	require.NoError(t, a.Close())
	assert.False(t, a.Initialized())
	assert.Equal(t, 1, m.unmaps)
	require.NoError(t, a.Close())
	assert.Equal(t, 1, m.unmaps)

	_, err := a.Alloc(8)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, a.Release(24), ErrNotInitialized)
	_, err = a.Blocks()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAddrAndRefOf(t *testing.T) {
	a := newTestAllocator(t, 4096, FirstFit)
	ref := mustAlloc(t, a, 10)

	addr := a.Addr(ref)
	require.NotZero(t, addr)
	assert.Zero(t, addr%8)
	assert.Equal(t, ref, a.RefOf(addr))

	assert.Zero(t, a.Addr(NilRef))
	assert.Zero(t, a.Addr(Ref(a.Capacity())))
	assert.Equal(t, NilRef, a.RefOf(0))
	assert.Equal(t, NilRef, a.RefOf(addr+uintptr(a.Capacity())))

	var foreign int64
	assert.Equal(t, NilRef, a.RefOf(uintptr(addrOf(&foreign))))
}

func TestCode(t *testing.T) {
	assert.Equal(t, StatusOK, Code(nil))
	assert.Equal(t, StatusOutOfMemory, Code(ErrOutOfMemory))
	assert.Equal(t, StatusInvalidPointer, Code(ErrInvalidPointer))
	assert.Equal(t, StatusUnknownStrategy, Code(ErrUnknownStrategy))
	assert.Equal(t, StatusNotInitialized, Code(ErrNotInitialized))
	assert.Equal(t, StatusCorrupt, Code(ErrCorrupt))
	assert.Equal(t, StatusUnknown, Code(errors.New("other")))
}
