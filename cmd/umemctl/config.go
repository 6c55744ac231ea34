package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	envCapacity = "UMEM_CAPACITY"
	envStrategy = "UMEM_STRATEGY"

	defaultCapacity = "1M"
	defaultStrategy = "first-fit"
)

// config holds flag defaults. Environment variables override the built-in
// defaults; command-line flags override both.
type config struct {
	Capacity string
	Strategy string
}

func loadConfig() config {
	return config{
		Capacity: getEnv(envCapacity, defaultCapacity),
		Strategy: getEnv(envStrategy, defaultStrategy),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// parseSize parses a byte count with an optional binary suffix
// (K, M, G, optionally followed by "iB" or "B").
func parseSize(s string) (int, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	t = strings.TrimSuffix(t, "IB")
	t = strings.TrimSuffix(t, "B")

	mult := 1
	switch {
	case strings.HasSuffix(t, "K"):
		mult = 1 << 10
	case strings.HasSuffix(t, "M"):
		mult = 1 << 20
	case strings.HasSuffix(t, "G"):
		mult = 1 << 30
	}
	if mult != 1 {
		t = t[:len(t)-1]
	}

	n, err := strconv.Atoi(t)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if n > int(^uint(0)>>1)/mult {
		return 0, fmt.Errorf("size %q overflows", s)
	}
	return n * mult, nil
}
