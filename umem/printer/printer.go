// Package printer renders allocator snapshots for people and for tools.
package printer

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/umemkit/umem"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs a human-readable table.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowAddresses includes absolute payload addresses.
	// Default: false (offsets are stable across runs, addresses are not)
	ShowAddresses bool

	// Summary appends the statistics block after the directory.
	// Default: true
	Summary bool

	// Language controls digit grouping in text output.
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:   FormatText,
		Summary:  true,
		Language: language.English,
	}
}

// Source is the read-only view a Printer needs.
type Source interface {
	Blocks() ([]umem.BlockInfo, error)
	Stats() (umem.Stats, error)
}

// Printer handles formatted output of allocator state.
type Printer struct {
	opts   Options
	writer io.Writer
	src    Source
	msg    *message.Printer
}

// New creates a new Printer.
//
// Example:
//
//	a, _ := umem.Open(1<<20, umem.BestFit)
//	p := printer.New(a, os.Stdout, printer.DefaultOptions())
//	p.Print()
func New(src Source, w io.Writer, opts Options) *Printer {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	return &Printer{
		opts:   opts,
		writer: w,
		src:    src,
		msg:    message.NewPrinter(opts.Language),
	}
}

// Print writes the directory and, if enabled, the summary.
func (p *Printer) Print() error {
	blocks, err := p.src.Blocks()
	if err != nil {
		return err
	}
	var stats *umem.Stats
	if p.opts.Summary {
		st, err := p.src.Stats()
		if err != nil {
			return err
		}
		stats = &st
	}

	switch p.opts.Format {
	case FormatText:
		return p.printText(blocks, stats)
	case FormatJSON:
		return p.printJSON(blocks, stats)
	default:
		return fmt.Errorf("printer: unsupported format %q", p.opts.Format)
	}
}

// PrintStats writes only the summary.
func (p *Printer) PrintStats() error {
	st, err := p.src.Stats()
	if err != nil {
		return err
	}
	switch p.opts.Format {
	case FormatText:
		return p.printStatsText(st)
	case FormatJSON:
		return p.printJSON(nil, &st)
	default:
		return fmt.Errorf("printer: unsupported format %q", p.opts.Format)
	}
}
