package umem

import (
	"fmt"

	"github.com/joshuapare/umemkit/internal/format"
	"github.com/joshuapare/umemkit/umem/verify"
)

// Verify checks every directory invariant against the raw arena: address
// order, full coverage of the capacity, 8-byte alignment of every payload,
// and no two adjacent free blocks.
func (a *Allocator) Verify() error {
	if !a.initialized {
		return ErrNotInitialized
	}
	if a.base()%format.Alignment != 0 {
		return &verify.ValidationError{
			Type:    "Alignment",
			Message: fmt.Sprintf("arena base %#x not 8-byte aligned", a.base()),
			Offset:  -1,
		}
	}
	return verify.AllInvariants(a.region)
}
