package umem

import (
	"log/slog"
	"os"

	"github.com/joshuapare/umemkit/internal/logger"
	"github.com/joshuapare/umemkit/internal/mmfile"
)

// Runtime debug flag for allocation logging - controlled by UMEM_LOG_ALLOC env var.
var logAlloc = os.Getenv("UMEM_LOG_ALLOC") != ""

// Mapper acquires a zero-filled region of exactly size bytes and returns a
// function that releases it.
type Mapper func(size int) ([]byte, func() error, error)

// Option configures an Allocator.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	mapper     Mapper
	pageSize   int
	traceAlloc bool
}

func defaultConfig() config {
	return config{
		logger:     logger.Discard(),
		mapper:     mmfile.MapAnon,
		traceAlloc: logAlloc,
	}
}

// WithLogger sets a structured logger for lifecycle and placement events.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMapper replaces the operating-system mapping used to acquire the arena.
func WithMapper(m Mapper) Option {
	return func(c *config) {
		if m != nil {
			c.mapper = m
		}
	}
}

// WithPageSize overrides the host page size used to round the capacity.
// Values that are not a positive power of two are ignored.
func WithPageSize(n int) Option {
	return func(c *config) {
		if n > 0 && n&(n-1) == 0 {
			c.pageSize = n
		}
	}
}

// WithAllocTrace enables per-operation debug records (splits, coalesces,
// placement misses) regardless of UMEM_LOG_ALLOC.
func WithAllocTrace(on bool) Option {
	return func(c *config) {
		c.traceAlloc = on
	}
}
