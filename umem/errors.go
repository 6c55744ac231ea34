package umem

import "errors"

var (
	// ErrInvalidSize indicates Init was asked for less capacity than one block header.
	ErrInvalidSize = errors.New("umem: capacity smaller than a block header")

	// ErrBackendFailure indicates the operating system declined the mapping request.
	ErrBackendFailure = errors.New("umem: backing region mapping failed")

	// ErrOutOfMemory indicates that no free block satisfies the request.
	ErrOutOfMemory = errors.New("umem: no free block large enough")

	// ErrInvalidPointer indicates a ref that is null, outside the arena, not the
	// start of a block payload, or already free.
	ErrInvalidPointer = errors.New("umem: invalid pointer")

	// ErrUnknownStrategy indicates an unrecognized placement strategy.
	ErrUnknownStrategy = errors.New("umem: unknown placement strategy")

	// ErrNotInitialized indicates an operation on an allocator without an arena.
	ErrNotInitialized = errors.New("umem: allocator not initialized")

	// ErrCorrupt indicates a block header that violates the directory layout.
	ErrCorrupt = errors.New("umem: corrupt block directory")
)

// Status codes returned across the C boundary. Zero means success.
const (
	StatusOK              = 0
	StatusInvalidSize     = -1
	StatusBackendFailure  = -2
	StatusOutOfMemory     = -3
	StatusInvalidPointer  = -4
	StatusUnknownStrategy = -5
	StatusNotInitialized  = -6
	StatusCorrupt         = -7
	StatusUnknown         = -99
)

// Code maps err to its status code.
func Code(err error) int {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInvalidSize):
		return StatusInvalidSize
	case errors.Is(err, ErrBackendFailure):
		return StatusBackendFailure
	case errors.Is(err, ErrOutOfMemory):
		return StatusOutOfMemory
	case errors.Is(err, ErrInvalidPointer):
		return StatusInvalidPointer
	case errors.Is(err, ErrUnknownStrategy):
		return StatusUnknownStrategy
	case errors.Is(err, ErrNotInitialized):
		return StatusNotInitialized
	case errors.Is(err, ErrCorrupt):
		return StatusCorrupt
	default:
		return StatusUnknown
	}
}
