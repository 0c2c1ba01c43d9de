package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/code-atlas/internal/config"
	"github.com/mvp-joe/code-atlas/internal/depgraph"
	"github.com/mvp-joe/code-atlas/internal/extract"
	"github.com/mvp-joe/code-atlas/internal/source"
)

// resolveRoot turns the optional positional argument into an absolute
// analysis root, defaulting to the working directory.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// loadConfig loads .atlas/config.yml under root, falling back to
// defaults when absent.
func loadConfig(root string) (*config.Config, error) {
	return config.NewLoader(root).Load()
}

// discoverFiles walks root applying the configured include and ignore
// patterns.
func discoverFiles(root string, cfg *config.Config) ([]source.File, error) {
	discovery, err := source.NewDiscovery(root, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}
	return discovery.Discover()
}

// analyze runs the dependency analysis with the given extractor set.
func analyze(files []source.File, extractors map[string]extract.Extractor, threshold int, quiet bool) *depgraph.Result {
	opts := []depgraph.Option{depgraph.WithCouplingThreshold(threshold)}
	if !quiet {
		opts = append(opts, depgraph.WithProgress(NewCLIProgressReporter()))
	}
	return depgraph.NewAnalyzer(opts...).Analyze(files, extractors)
}

// outputPath joins the configured output directory with name, rooted at
// the analysis root when the directory is relative.
func outputPath(root string, cfg *config.Config, name string) string {
	dir := cfg.Output.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return filepath.Join(dir, name)
}
