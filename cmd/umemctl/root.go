package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/umemkit/internal/logger"
	"github.com/joshuapare/umemkit/umem"
)

var (
	// Global flags
	verbose      bool
	quiet        bool
	jsonOut      bool
	capacityFlag string
	strategyFlag string
	logDir       string
)

var rootCmd = &cobra.Command{
	Use:   "umemctl",
	Short: "Drive a user-space memory allocator",
	Long: `umemctl runs allocation workloads against an arena-backed allocator
and reports its block directory, statistics and invariant checks. Each
command uses a fresh arena sized by --capacity with the placement policy
chosen by --strategy.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cfg := loadConfig()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&capacityFlag, "capacity", cfg.Capacity, "Arena capacity (e.g. 65536, 64K, 1M); env "+envCapacity)
	rootCmd.PersistentFlags().
		StringVar(&strategyFlag, "strategy", cfg.Strategy, "Placement strategy (best, worst, first, next); env "+envStrategy)
	rootCmd.PersistentFlags().
		StringVar(&logDir, "log-dir", "", "Write allocator debug logs to a dated file in this directory")
}

func execute() {
	err := rootCmd.Execute()
	if closeErr := logger.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("--log-dir: %w", closeErr)
	}
	if err != nil {
		printError("%v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps allocator errors to distinct exit statuses; anything else
// exits with 1.
func exitCode(err error) int {
	code := umem.Code(err)
	if code == umem.StatusOK {
		return 0
	}
	if code == umem.StatusUnknown {
		return 1
	}
	return 10 - code
}

// openAllocator builds an allocator from the global flags.
func openAllocator() (*umem.Allocator, error) {
	capacity, err := parseSize(capacityFlag)
	if err != nil {
		return nil, fmt.Errorf("--capacity: %w", err)
	}
	strategy, err := umem.ParseStrategy(strategyFlag)
	if err != nil {
		return nil, fmt.Errorf("--strategy: %w", err)
	}

	trace := (verbose && !quiet) || logDir != ""
	if err := logger.Init(logger.Options{
		Enabled: trace,
		Level:   slog.LevelDebug,
		Output:  os.Stderr,
		LogDir:  logDir,
	}); err != nil {
		return nil, fmt.Errorf("--log-dir: %w", err)
	}

	printVerbose("Opening arena: %d bytes, %s\n", capacity, strategy)
	return umem.Open(capacity, strategy,
		umem.WithLogger(logger.L),
		umem.WithAllocTrace(trace),
	)
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

var errVerifyFailed = errors.New("invariant check failed")
