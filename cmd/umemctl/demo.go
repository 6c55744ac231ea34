package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/umemkit/umem"
)

var demoStrategy string

func init() {
	cmd := newDemoCmd()
	cmd.Flags().StringVar(&demoStrategy, "only", "", "Run the demo for a single strategy")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Compare placement strategies on a reference workload",
		Long: `The demo command runs the same workload under every placement strategy:
allocate 1000, 500, 2000 and 300 bytes, free the second and fourth blocks,
allocate 800 bytes, then dump the directory.

Example:
  umemctl demo
  umemctl demo --only next-fit
  umemctl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

var (
	demoSizes   = []int{1000, 500, 2000, 300}
	demoFreed   = []int{1, 3}
	demoRequest = 800
)

// demoResult is one strategy's outcome.
type demoResult struct {
	Strategy string           `json:"strategy"`
	Ref      uint64           `json:"ref"`
	Offset   int              `json:"offset"`
	Blocks   []umem.BlockInfo `json:"blocks"`
}

func runDemo() error {
	strategies := umem.Strategies()
	if demoStrategy != "" {
		s, err := umem.ParseStrategy(demoStrategy)
		if err != nil {
			return fmt.Errorf("--only: %w", err)
		}
		strategies = []umem.Strategy{s}
	}

	saved := strategyFlag
	defer func() { strategyFlag = saved }()

	var results []demoResult
	for _, s := range strategies {
		strategyFlag = s.String()
		r, err := demoOnce()
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
		results = append(results, r)
	}

	if jsonOut {
		return printJSON(results)
	}
	return nil
}

func demoOnce() (demoResult, error) {
	a, err := openAllocator()
	if err != nil {
		return demoResult{}, err
	}
	defer a.Close()

	refs := make([]umem.Ref, len(demoSizes))
	for i, n := range demoSizes {
		if refs[i], err = a.Alloc(n); err != nil {
			return demoResult{}, err
		}
	}
	for _, i := range demoFreed {
		if err := a.Release(refs[i]); err != nil {
			return demoResult{}, err
		}
	}
	ref, err := a.Alloc(demoRequest)
	if err != nil {
		return demoResult{}, err
	}

	blocks, err := a.Blocks()
	if err != nil {
		return demoResult{}, err
	}
	res := demoResult{Strategy: a.Strategy().String(), Ref: uint64(ref), Blocks: blocks}
	for _, b := range blocks {
		if b.Ref == ref {
			res.Offset = b.Offset
		}
	}

	if !jsonOut && !quiet {
		fmt.Printf("== %s ==\n", res.Strategy)
		fmt.Printf("%d bytes placed at ref %d (block offset %d)\n", demoRequest, res.Ref, res.Offset)
		if err := a.Dump(os.Stdout); err != nil {
			return demoResult{}, err
		}
		fmt.Println()
	}
	return res, nil
}
