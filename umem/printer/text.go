package printer

import (
	"fmt"

	"github.com/joshuapare/umemkit/umem"
)

func status(free bool) string {
	if free {
		return "free"
	}
	return "used"
}

// printText prints one row per block followed by the optional summary.
func (p *Printer) printText(blocks []umem.BlockInfo, stats *umem.Stats) error {
	if p.opts.ShowAddresses {
		fmt.Fprintf(p.writer, "%-18s  %10s  %10s  %12s  %s\n", "ADDRESS", "OFFSET", "REF", "SIZE", "STATUS")
	} else {
		fmt.Fprintf(p.writer, "%10s  %10s  %12s  %s\n", "OFFSET", "REF", "SIZE", "STATUS")
	}

	for _, b := range blocks {
		size := p.msg.Sprintf("%d", b.Size)
		if p.opts.ShowAddresses {
			fmt.Fprintf(p.writer, "%#-18x  %10d  %10d  %12s  %s\n", b.Addr, b.Offset, uint64(b.Ref), size, status(b.Free))
		} else {
			fmt.Fprintf(p.writer, "%10d  %10d  %12s  %s\n", b.Offset, uint64(b.Ref), size, status(b.Free))
		}
	}

	if stats == nil {
		return nil
	}
	fmt.Fprintln(p.writer)
	return p.printStatsText(*stats)
}

// printStatsText prints the summary with grouped digits.
func (p *Printer) printStatsText(s umem.Stats) error {
	rows := []struct {
		label string
		value string
	}{
		{"Strategy", s.Strategy.String()},
		{"Capacity", p.msg.Sprintf("%d bytes", s.Capacity)},
		{"Blocks", p.msg.Sprintf("%d (%d free)", s.Blocks, s.FreeBlocks)},
		{"Used", p.msg.Sprintf("%d bytes", s.UsedBytes)},
		{"Free", p.msg.Sprintf("%d bytes", s.FreeBytes)},
		{"Headers", p.msg.Sprintf("%d bytes", s.HeaderBytes)},
		{"Largest free", p.msg.Sprintf("%d bytes", s.LargestFree)},
		{"Fragmentation", p.msg.Sprintf("%.1f%%", s.Fragmentation*100)},
		{"Allocs", p.msg.Sprintf("%d (%d failed)", s.AllocCalls, s.AllocFailures)},
		{"Releases", p.msg.Sprintf("%d (%d rejected)", s.ReleaseCalls, s.ReleaseRejected)},
		{"Splits", p.msg.Sprintf("%d", s.Splits)},
		{"Coalesces", p.msg.Sprintf("%d forward, %d backward", s.CoalesceForward, s.CoalesceBackward)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(p.writer, "%-14s %s\n", r.label+":", r.value); err != nil {
			return err
		}
	}
	return nil
}
