package umem

import (
	"fmt"
	"log/slog"
	"math"
	"unsafe"

	"github.com/joshuapare/umemkit/internal/format"
	"github.com/joshuapare/umemkit/internal/mmfile"
)

// Allocator manages one arena and the block directory laid over it.
//
// The zero value is not usable; create instances with New or Open.
type Allocator struct {
	cfg config
	log *slog.Logger

	region []byte       // the whole arena, headers included
	unmap  func() error // releases region

	strategy Strategy

	// rover is the header offset where the next NextFit scan begins.
	// It always names a live header while the allocator is initialized.
	rover int

	initialized bool

	stats counters
}

// New creates an uninitialized allocator. Call Init before allocating.
func New(opts ...Option) *Allocator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Allocator{cfg: cfg, log: cfg.logger}
}

// Open is New followed by Init.
func Open(capacity int, strategy Strategy, opts ...Option) (*Allocator, error) {
	a := New(opts...)
	if err := a.Init(capacity, strategy); err != nil {
		return nil, err
	}
	return a, nil
}

// Init acquires an arena of at least capacity bytes (rounded up to the page
// size) and lays a single free block over it. An already initialized
// allocator releases its previous arena first; every Ref it handed out
// becomes invalid.
func (a *Allocator) Init(capacity int, strategy Strategy) error {
	if capacity < format.HeaderSize {
		return fmt.Errorf("%w: requested %d bytes, need at least %d", ErrInvalidSize, capacity, format.HeaderSize)
	}
	if !strategy.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(strategy))
	}

	pageSize := a.cfg.pageSize
	if pageSize == 0 {
		pageSize = mmfile.PageSize()
	}
	if capacity > math.MaxInt-pageSize {
		return fmt.Errorf("%w: requested %d bytes overflows page rounding", ErrInvalidSize, capacity)
	}
	size := format.AlignPage(capacity, pageSize)

	if a.initialized {
		a.log.Info("reinitializing arena", "old_capacity", len(a.region), "new_capacity", size)
		if err := a.releaseRegion(); err != nil {
			return fmt.Errorf("%w: release previous arena: %w", ErrBackendFailure, err)
		}
	}

	data, unmap, err := a.cfg.mapper(size)
	if err != nil {
		a.log.Error("arena mapping failed", "capacity", size, "error", err)
		return fmt.Errorf("%w: %w", ErrBackendFailure, err)
	}
	if len(data) != size {
		if unmap != nil {
			_ = unmap()
		}
		return fmt.Errorf("%w: mapper returned %d bytes, want %d", ErrBackendFailure, len(data), size)
	}

	a.region = data
	a.unmap = unmap
	a.strategy = strategy
	a.stats = counters{}

	a.store(block{off: 0, Header: format.Header{
		Size: uint64(size - format.HeaderSize),
		Next: format.NoNext,
		Free: true,
	}})
	a.rover = 0
	a.initialized = true

	a.log.Info("arena initialized",
		"requested", capacity,
		"capacity", size,
		"page_size", pageSize,
		"strategy", strategy.String(),
	)
	return nil
}

// Close releases the arena and returns the allocator to the uninitialized
// state. Closing an uninitialized allocator is a no-op.
func (a *Allocator) Close() error {
	if !a.initialized {
		return nil
	}
	a.log.Info("arena released", "capacity", len(a.region))
	return a.releaseRegion()
}

func (a *Allocator) releaseRegion() error {
	var err error
	if a.unmap != nil {
		err = a.unmap()
	}
	a.region = nil
	a.unmap = nil
	a.rover = 0
	a.initialized = false
	return err
}

// Initialized reports whether the allocator currently owns an arena.
func (a *Allocator) Initialized() bool { return a.initialized }

// Capacity returns the arena size in bytes (headers included).
func (a *Allocator) Capacity() int { return len(a.region) }

// Strategy returns the placement strategy chosen at Init.
func (a *Allocator) Strategy() Strategy { return a.strategy }

// base returns the absolute address of the arena start.
func (a *Allocator) base() uintptr {
	if len(a.region) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.region)))
}

// Addr returns the absolute address of the payload named by ref, or 0 when
// ref lies outside the arena.
func (a *Allocator) Addr(ref Ref) uintptr {
	if ref == NilRef || ref >= Ref(len(a.region)) {
		return 0
	}
	return a.base() + uintptr(ref)
}

// RefOf maps an absolute address back to a Ref. It returns NilRef for a null
// address or one outside the arena, so foreign pointers never reach the
// directory.
func (a *Allocator) RefOf(addr uintptr) Ref {
	b := a.base()
	if addr == 0 || b == 0 || addr < b || addr-b >= uintptr(len(a.region)) {
		return NilRef
	}
	return Ref(addr - b)
}
