package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// opKind is a workload script instruction.
type opKind string

const (
	opAlloc  opKind = "alloc"
	opFree   opKind = "free"
	opDump   opKind = "dump"
	opStats  opKind = "stats"
	opVerify opKind = "verify"
)

// op is one parsed script line.
type op struct {
	Line int
	Kind opKind
	Name string
	Size int
}

// parseScript reads a workload script. Blank lines and lines starting
// with '#' are skipped; trailing "# ..." comments are stripped.
//
//	alloc <name> <size>
//	free <name>
//	dump | stats | verify
func parseScript(r io.Reader) ([]op, error) {
	var ops []op
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		o := op{Line: lineNo, Kind: opKind(strings.ToLower(fields[0]))}
		args := fields[1:]
		switch o.Kind {
		case opAlloc:
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: usage: alloc <name> <size>", lineNo)
			}
			size, err := parseSize(args[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			o.Name, o.Size = args[0], size
		case opFree:
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: usage: free <name>", lineNo)
			}
			o.Name = args[0]
		case opDump, opStats, opVerify:
			if len(args) != 0 {
				return nil, fmt.Errorf("line %d: %s takes no arguments", lineNo, o.Kind)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown command %q", lineNo, fields[0])
		}
		ops = append(ops, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ops, nil
}
