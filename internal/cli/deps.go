package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-atlas/internal/config"
	"github.com/mvp-joe/code-atlas/internal/depgraph"
	"github.com/mvp-joe/code-atlas/internal/export"
	"github.com/mvp-joe/code-atlas/internal/extract"
	"github.com/mvp-joe/code-atlas/internal/source"
	"github.com/mvp-joe/code-atlas/internal/watcher"
)

var (
	depsFormat    string
	depsOut       string
	depsThreshold int
	depsQuiet     bool
	depsWatch     bool
)

// depsCmd represents the deps command
var depsCmd = &cobra.Command{
	Use:   "deps [path]",
	Short: "Build the file dependency map",
	Long: `Deps indexes every recognized source file under the given path,
resolves imports into file-to-file dependency edges, and reports
cycles, orphans, and coupling hot spots.

Examples:
  # Analyze the current directory, write JSON to .atlas/out
  atlas deps

  # Graphviz output to a chosen file
  atlas deps ./services --format dot --out deps.dot

  # Re-analyze on every change
  atlas deps --watch
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().StringVarP(&depsFormat, "format", "f", "", "output format: json, dot, mermaid, or markdown (default from config)")
	depsCmd.Flags().StringVarP(&depsOut, "out", "o", "", "output file (default under the configured output dir)")
	depsCmd.Flags().IntVarP(&depsThreshold, "threshold", "t", 0, "coupling threshold (default from config)")
	depsCmd.Flags().BoolVarP(&depsQuiet, "quiet", "q", false, "disable progress bars and non-error output")
	depsCmd.Flags().BoolVarP(&depsWatch, "watch", "w", false, "watch for file changes and re-analyze")
}

func runDeps(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	threshold := cfg.Analysis.CouplingThreshold
	if cmd.Flags().Changed("threshold") {
		threshold = depsThreshold
	}
	formatName := cfg.Output.Format
	if depsFormat != "" {
		formatName = depsFormat
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	out := depsOut
	if out == "" {
		out = outputPath(root, cfg, "dependency-map"+format.Extension())
	}

	if depsWatch {
		return watchDeps(root, cfg, format, out, threshold)
	}

	files, err := discoverFiles(root, cfg)
	if err != nil {
		return err
	}
	result := analyze(files, extract.DefaultExtractors(), threshold, depsQuiet)
	if err := export.Write(result, format, out); err != nil {
		return err
	}

	if !depsQuiet {
		printDepsSummary(result, out)
	}
	return nil
}

func printDepsSummary(result *depgraph.Result, out string) {
	fmt.Printf("Files:                 %d\n", result.FileCount)
	fmt.Printf("Classes:               %d\n", result.ClassCount)
	fmt.Printf("Internal dependencies: %d\n", result.DependencyCount)
	fmt.Printf("External dependencies: %d\n", result.ExternalDependencyCount)
	fmt.Printf("Circular dependencies: %d\n", len(result.CircularDependencies))
	fmt.Printf("Orphaned files:        %d\n", len(result.OrphanedFiles))
	fmt.Printf("Highly coupled files:  %d\n", len(result.HighlyCoupledFiles))
	fmt.Printf("Wrote %s\n", out)
}

// watchDeps re-runs the analysis whenever watched files change. The
// extractor set is wrapped in a content-keyed cache so unchanged files
// cost one hash per run.
func watchDeps(root string, cfg *config.Config, format export.Format, out string, threshold int) error {
	extractors, err := extract.CachingExtractors(extract.DefaultExtractors())
	if err != nil {
		return err
	}

	analyzer := depgraph.NewAnalyzer(depgraph.WithCouplingThreshold(threshold))
	runOnce := func() {
		files, err := discoverFiles(root, cfg)
		if err != nil {
			log.Printf("Discovery failed: %v", err)
			return
		}
		result := analyzer.Analyze(files, extractors)
		if err := export.Write(result, format, out); err != nil {
			log.Printf("Export failed: %v", err)
			return
		}
		if !depsQuiet {
			log.Printf("Wrote %s (%d files, %d edges)", out, result.FileCount, result.DependencyCount)
		}
	}
	runOnce()

	w, err := watcher.New(root, source.Extensions(), time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(context.Background(), func(changed []string) {
		if !depsQuiet {
			log.Printf("%d files changed, re-analyzing", len(changed))
		}
		runOnce()
	}); err != nil {
		return err
	}

	if !depsQuiet {
		fmt.Println("Watching for changes. Press Ctrl+C to stop.")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nStopping watch...")
	return nil
}
