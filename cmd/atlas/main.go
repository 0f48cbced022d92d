package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeatlas"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagMarker  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "atlas",
	Short:         "Static source-tree analysis for Python package trees",
	Long:          "Atlas scans directory trees of Python packages with tree-sitter and prints an index of every module, class, and top-level callable under its fully-qualified public name.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [root...]",
	Short: "Scan one or more root directories and print the index",
	Long:  "Walks each root, parses every module with tree-sitter, applies declared export lists, and prints the resulting index. Roots are analyzed concurrently.",
	Args:  cobra.ArbitraryArgs,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&flagMarker, "marker", "", "package-marker filename (default __init__.py)")
	scanCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every indexed file")
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()

	roots, err := resolveRoots(args)
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           log.WarnLevel,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	opts := []codeatlas.Option{codeatlas.WithLogger(logger)}
	if flagMarker != "" {
		opts = append(opts, codeatlas.WithMarkerName(flagMarker))
	}

	res, err := codeatlas.NewGroup(opts...).Analyze(roots)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	if err := outputIndex(os.Stdout, flagFormat, newCLIIndex(res)); err != nil {
		return err
	}

	// Timing summary to stderr so stdout stays machine-readable.
	fmt.Fprintf(os.Stderr, "Scanned %d root(s) in %s: %d modules, %d classes, %d callables, %d failures\n",
		len(roots),
		time.Since(start).Round(time.Millisecond),
		len(res.Modules), len(res.Classes), len(res.Methods), len(res.Failures))

	return nil
}

// resolveRoots returns the absolute paths of the directories to scan,
// defaulting to the current directory.
func resolveRoots(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	roots := make([]string, len(args))
	for i, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving path %q: %w", arg, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("directory not found: %s", abs)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("not a directory: %s", abs)
		}
		roots[i] = abs
	}
	return roots, nil
}
