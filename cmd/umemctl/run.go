package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/umemkit/umem"
	"github.com/joshuapare/umemkit/umem/printer"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [script]",
		Short: "Execute a workload script",
		Long: `The run command executes an allocation workload against a fresh arena.
The script is read from the named file, or from stdin when omitted or "-".

Script lines:
  alloc <name> <size>   allocate size bytes and bind the result to name
  free <name>           release the block bound to name
  dump                  print the block directory
  stats                 print allocator statistics
  verify                check the directory invariants
  # ...                 comment

Allocation failures and rejected releases are reported and the script
continues. A failed verify stops it.

Example:
  umemctl run workload.txt
  umemctl run --strategy best --capacity 64K workload.txt
  printf 'alloc a 100\ndump\n' | umemctl run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args, cmd.InOrStdin())
		},
	}
}

func runScript(args []string, stdin io.Reader) error {
	src := stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		src = f
	}

	ops, err := parseScript(src)
	if err != nil {
		return err
	}

	a, err := openAllocator()
	if err != nil {
		return err
	}
	defer a.Close()

	return execScript(a, ops)
}

// execScript applies ops in order. Names stay bound after free so that a
// repeated free reaches the allocator and is rejected there.
func execScript(a *umem.Allocator, ops []op) error {
	names := make(map[string]umem.Ref)
	for _, o := range ops {
		switch o.Kind {
		case opAlloc:
			if _, ok := names[o.Name]; ok {
				return fmt.Errorf("line %d: name %q already bound", o.Line, o.Name)
			}
			ref, err := a.Alloc(o.Size)
			if err != nil {
				if !errors.Is(err, umem.ErrOutOfMemory) {
					return fmt.Errorf("line %d: %w", o.Line, err)
				}
				printInfo("alloc %s %d: %v\n", o.Name, o.Size, err)
				continue
			}
			names[o.Name] = ref
			printVerbose("alloc %s %d -> ref %d\n", o.Name, o.Size, ref)

		case opFree:
			ref, ok := names[o.Name]
			if !ok {
				return fmt.Errorf("line %d: unknown name %q", o.Line, o.Name)
			}
			if err := a.Release(ref); err != nil {
				if !errors.Is(err, umem.ErrInvalidPointer) {
					return fmt.Errorf("line %d: %w", o.Line, err)
				}
				printInfo("free %s: %v\n", o.Name, err)
				continue
			}
			printVerbose("free %s (ref %d)\n", o.Name, ref)

		case opDump:
			if err := printDirectory(a); err != nil {
				return fmt.Errorf("line %d: %w", o.Line, err)
			}

		case opStats:
			if quiet {
				continue
			}
			if err := newPrinter(a, false).PrintStats(); err != nil {
				return fmt.Errorf("line %d: %w", o.Line, err)
			}

		case opVerify:
			if err := a.Verify(); err != nil {
				return fmt.Errorf("line %d: %w: %w", o.Line, errVerifyFailed, err)
			}
			printInfo("verify: ok\n")
		}
	}
	return nil
}

// printDirectory writes the raw dump in text mode and the structured
// listing in JSON mode.
func printDirectory(a *umem.Allocator) error {
	if quiet {
		return nil
	}
	if jsonOut {
		return newPrinter(a, false).Print()
	}
	return a.Dump(os.Stdout)
}

func newPrinter(src printer.Source, summary bool) *printer.Printer {
	opts := printer.DefaultOptions()
	opts.Summary = summary
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	return printer.New(src, os.Stdout, opts)
}
