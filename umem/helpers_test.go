package umem

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/umemkit/internal/format"
)

const testPageSize = 4096

// shape is the comparable part of a block snapshot.
type shape struct {
	Off  int
	Size int
	Free bool
}

// newTestAllocator opens an allocator with a fixed 4 KiB page size so that
// hand-computed layouts do not depend on the host.
func newTestAllocator(t testing.TB, capacity int, s Strategy, opts ...Option) *Allocator {
	t.Helper()
	opts = append([]Option{WithPageSize(testPageSize)}, opts...)
	a, err := Open(capacity, s, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// shapes snapshots the directory.
func shapes(t testing.TB, a *Allocator) []shape {
	t.Helper()
	blocks, err := a.Blocks()
	require.NoError(t, err)
	out := make([]shape, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, shape{Off: b.Offset, Size: b.Size, Free: b.Free})
	}
	return out
}

// dumpString renders Dump into a string.
func dumpString(t testing.TB, a *Allocator) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, a.Dump(&buf))
	return buf.String()
}

// assertInvariants checks the directory invariants and that the header
// plus payload bytes account for the whole arena.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Verify())

	total := 0
	for _, s := range shapes(t, a) {
		total += format.HeaderSize + s.Size
	}
	require.Equal(t, a.Capacity(), total, "blocks must cover the arena")
}

// mustAlloc allocates and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, size int) Ref {
	t.Helper()
	ref, err := a.Alloc(size)
	require.NoError(t, err, "Alloc(%d)", size)
	require.NotEqual(t, NilRef, ref)
	return ref
}

// heapMapper backs arenas with Go heap slices and records activity.
type heapMapper struct {
	maps    int
	unmaps  int
	fail    error
	regions [][]byte
}

func (m *heapMapper) Map(size int) ([]byte, func() error, error) {
	m.maps++
	if m.fail != nil {
		return nil, nil, m.fail
	}
	data := make([]byte, size)
	m.regions = append(m.regions, data)
	return data, func() error {
		m.unmaps++
		return nil
	}, nil
}

var errMapDenied = errors.New("mmap: cannot allocate memory")

// addrOf returns the address of a Go-heap value, which never lies inside an arena.
func addrOf(p *int64) unsafe.Pointer { return unsafe.Pointer(p) }

// buildLayout allocates sizes in order, consumes whatever remains at the tail
// so no free space is left behind the last block, then releases the blocks at
// the given indexes. It returns the refs of the released blocks.
func buildLayout(t testing.TB, a *Allocator, sizes []int, release []int) []Ref {
	t.Helper()
	refs := make([]Ref, 0, len(sizes))
	for _, n := range sizes {
		refs = append(refs, mustAlloc(t, a, n))
	}
	blocks, err := a.Blocks()
	require.NoError(t, err)
	if tail := blocks[len(blocks)-1]; tail.Free {
		mustAlloc(t, a, tail.Size)
	}

	var holes []Ref
	for _, i := range release {
		require.NoError(t, a.Release(refs[i]))
		holes = append(holes, refs[i])
	}
	assertInvariants(t, a)
	return holes
}

// recordingHandler is a slog.Handler that keeps record messages.
type recordingHandler struct {
	mu   sync.Mutex
	msgs []string
}

func (h *recordingHandler) logger() *slog.Logger { return slog.New(h) }

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, r.Message)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *recordingHandler) WithGroup(string) slog.Handler { return h }

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.msgs...)
}
