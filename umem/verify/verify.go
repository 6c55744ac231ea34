// Package verify provides validation functions for a raw arena image.
// These helpers are used in tests and by Allocator.Verify to ensure the block
// directory invariants are maintained.
package verify

import (
	"fmt"

	"github.com/joshuapare/umemkit/internal/buf"
	"github.com/joshuapare/umemkit/internal/format"
)

// ValidationError describes the first invariant violation found.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Block is a header decoded during validation.
type Block struct {
	Offset int
	format.Header
}

// AllInvariants validates all directory invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	blocks, err := Chain(data)
	if err != nil {
		return err
	}
	if err := Coverage(data, blocks); err != nil {
		return err
	}
	if err := Alignment(blocks); err != nil {
		return err
	}
	return Coalesced(blocks)
}

// Chain follows the next links from offset 0 and checks that every header
// lies inside the arena and that offsets strictly increase. It returns the
// decoded blocks head to tail.
func Chain(data []byte) ([]Block, error) {
	if len(data) < format.HeaderSize {
		return nil, &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("arena too small: %d bytes (need %d)", len(data), format.HeaderSize),
			Offset:  -1,
		}
	}

	var blocks []Block
	off := 0
	for {
		if !buf.Has(data, off, format.HeaderSize) {
			return nil, &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("header extends past arena end 0x%X", len(data)),
				Offset:  off,
			}
		}
		h := format.DecodeHeader(data, off)
		blocks = append(blocks, Block{Offset: off, Header: h})
		if !h.HasNext() {
			return blocks, nil
		}
		if h.Next <= uint64(off) {
			return nil, &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("next link 0x%X does not ascend", h.Next),
				Offset:  off,
			}
		}
		if h.Next >= uint64(len(data)) {
			return nil, &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("next link 0x%X outside arena", h.Next),
				Offset:  off,
			}
		}
		off = int(h.Next)
	}
}

// Coverage checks that blocks tile the arena: each payload ends where the
// next header begins, and header plus payload bytes sum to len(data).
func Coverage(data []byte, blocks []Block) error {
	total := 0
	for i, b := range blocks {
		if b.Size > uint64(len(data)) {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("size %d exceeds arena", b.Size),
				Offset:  b.Offset,
			}
		}
		end := b.Offset + format.HeaderSize + int(b.Size)
		if i+1 < len(blocks) && end != blocks[i+1].Offset {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("payload ends at 0x%X but next header is at 0x%X", end, blocks[i+1].Offset),
				Offset:  b.Offset,
			}
		}
		total += format.HeaderSize + int(b.Size)
	}
	if total != len(data) {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("blocks cover %d bytes, arena is %d", total, len(data)),
			Offset:  -1,
		}
	}
	return nil
}

// Alignment checks that every header offset and payload size is a multiple
// of 8, which keeps every payload offset 8-byte aligned.
func Alignment(blocks []Block) error {
	for _, b := range blocks {
		if !format.IsAligned8(b.Offset) {
			return &ValidationError{
				Type:    "Alignment",
				Message: "header offset not 8-byte aligned",
				Offset:  b.Offset,
			}
		}
		if b.Size%format.Alignment != 0 {
			return &ValidationError{
				Type:    "Alignment",
				Message: fmt.Sprintf("payload size %d not a multiple of %d", b.Size, format.Alignment),
				Offset:  b.Offset,
			}
		}
	}
	return nil
}

// Coalesced checks that no two link-adjacent blocks are both free.
func Coalesced(blocks []Block) error {
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1].Free && blocks[i].Free {
			return &ValidationError{
				Type:    "Coalesced",
				Message: fmt.Sprintf("free block followed by free block at 0x%X", blocks[i].Offset),
				Offset:  blocks[i-1].Offset,
			}
		}
	}
	return nil
}
