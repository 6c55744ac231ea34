package umem

import (
	"fmt"
	"io"

	"github.com/joshuapare/umemkit/internal/format"
)

// Blocks returns a snapshot of the directory, head to tail.
func (a *Allocator) Blocks() ([]BlockInfo, error) {
	if !a.initialized {
		return nil, ErrNotInitialized
	}
	base := a.base()
	var out []BlockInfo
	err := a.walk(func(b block) bool {
		out = append(out, b.info(base))
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Dump writes one line per block, in address order, with the header
// address, header offset, payload size and allocation status. It never
// modifies the directory.
func (a *Allocator) Dump(w io.Writer) error {
	blocks, err := a.Blocks()
	if err != nil {
		return err
	}
	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "Block %#x: off %d, size %d, free %t\n", b.Addr-format.HeaderSize, b.Offset, b.Size, b.Free); err != nil {
			return err
		}
	}
	return nil
}
