package umem

import (
	"fmt"
	"strings"
)

// Ref is the offset of a payload from the start of the arena.
type Ref uint64

// NilRef is returned when no block could be allocated.
const NilRef Ref = 0

// Strategy selects how Alloc chooses among free blocks.
//
// The numeric values match the codes accepted by the C bindings.
type Strategy uint8

const (
	BestFit  Strategy = 1
	WorstFit Strategy = 2
	FirstFit Strategy = 3
	NextFit  Strategy = 4
)

// Strategies lists every supported strategy in code order.
func Strategies() []Strategy {
	return []Strategy{BestFit, WorstFit, FirstFit, NextFit}
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	return s >= BestFit && s <= NextFit
}

func (s Strategy) String() string {
	switch s {
	case BestFit:
		return "best-fit"
	case WorstFit:
		return "worst-fit"
	case FirstFit:
		return "first-fit"
	case NextFit:
		return "next-fit"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseStrategy maps a name such as "first-fit", "firstfit", "first" or
// "FirstFit" to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	n = strings.TrimSuffix(n, "fit")
	switch n {
	case "best":
		return BestFit, nil
	case "worst":
		return WorstFit, nil
	case "first":
		return FirstFit, nil
	case "next":
		return NextFit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// BlockInfo is a read-only snapshot of one block in the directory.
type BlockInfo struct {
	Offset int     // header offset from the arena start
	Ref    Ref     // payload offset (Offset + header size)
	Addr   uintptr // absolute payload address
	Size   int     // payload bytes
	Free   bool
}
