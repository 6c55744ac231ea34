package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/umemkit/umem"
)

// jsonBlock represents one block in JSON format.
type jsonBlock struct {
	Offset int    `json:"offset"`
	Ref    uint64 `json:"ref"`
	Addr   string `json:"addr,omitempty"`
	Size   int    `json:"size"`
	Free   bool   `json:"free"`
}

// jsonStats represents the summary in JSON format.
type jsonStats struct {
	Strategy         string  `json:"strategy"`
	Capacity         int     `json:"capacity"`
	Blocks           int     `json:"blocks"`
	FreeBlocks       int     `json:"free_blocks"`
	UsedBytes        int     `json:"used_bytes"`
	FreeBytes        int     `json:"free_bytes"`
	HeaderBytes      int     `json:"header_bytes"`
	LargestFree      int     `json:"largest_free"`
	Fragmentation    float64 `json:"fragmentation"`
	AllocCalls       int     `json:"alloc_calls"`
	AllocFailures    int     `json:"alloc_failures"`
	ReleaseCalls     int     `json:"release_calls"`
	ReleaseRejected  int     `json:"release_rejected"`
	Splits           int     `json:"splits"`
	CoalesceForward  int     `json:"coalesce_forward"`
	CoalesceBackward int     `json:"coalesce_backward"`
}

type jsonReport struct {
	Blocks []jsonBlock `json:"blocks,omitempty"`
	Stats  *jsonStats  `json:"stats,omitempty"`
}

func toJSONStats(s umem.Stats) *jsonStats {
	return &jsonStats{
		Strategy:         s.Strategy.String(),
		Capacity:         s.Capacity,
		Blocks:           s.Blocks,
		FreeBlocks:       s.FreeBlocks,
		UsedBytes:        s.UsedBytes,
		FreeBytes:        s.FreeBytes,
		HeaderBytes:      s.HeaderBytes,
		LargestFree:      s.LargestFree,
		Fragmentation:    s.Fragmentation,
		AllocCalls:       s.AllocCalls,
		AllocFailures:    s.AllocFailures,
		ReleaseCalls:     s.ReleaseCalls,
		ReleaseRejected:  s.ReleaseRejected,
		Splits:           s.Splits,
		CoalesceForward:  s.CoalesceForward,
		CoalesceBackward: s.CoalesceBackward,
	}
}

// printJSON prints the report as one indented JSON document.
func (p *Printer) printJSON(blocks []umem.BlockInfo, stats *umem.Stats) error {
	var r jsonReport
	for _, b := range blocks {
		jb := jsonBlock{Offset: b.Offset, Ref: uint64(b.Ref), Size: b.Size, Free: b.Free}
		if p.opts.ShowAddresses {
			jb.Addr = fmt.Sprintf("%#x", b.Addr)
		}
		r.Blocks = append(r.Blocks, jb)
	}
	if stats != nil {
		r.Stats = toJSONStats(*stats)
	}

	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
