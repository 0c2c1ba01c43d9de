package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-atlas/internal/catalog"
	"github.com/mvp-joe/code-atlas/internal/depgraph"
	"github.com/mvp-joe/code-atlas/internal/export"
	"github.com/mvp-joe/code-atlas/internal/extract"
)

var (
	catalogOut   string
	catalogQuiet bool
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog [path]",
	Short: "Catalog HTTP endpoints and message flows",
	Long: `Catalog detects attribute-annotated controllers, their HTTP endpoints
and routes, infers per-endpoint processing steps from method bodies,
and stitches asynchronous consumer hops onto flows that publish
messages. Results include per-endpoint sequence diagrams.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVarP(&catalogOut, "out", "o", "", "output file (default under the configured output dir)")
	catalogCmd.Flags().BoolVarP(&catalogQuiet, "quiet", "q", false, "disable non-error output")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	files, err := discoverFiles(root, cfg)
	if err != nil {
		return err
	}

	// Endpoint-to-component edges need the dependency analysis.
	analyzer := depgraph.NewAnalyzer(depgraph.WithCouplingThreshold(cfg.Analysis.CouplingThreshold))
	analyzer.Analyze(files, extract.DefaultExtractors())

	cat := catalog.Build(files, analyzer)

	out := catalogOut
	if out == "" {
		out = outputPath(root, cfg, "service-catalog.json")
	}
	if err := export.WriteJSON(out, cat); err != nil {
		return err
	}

	if !catalogQuiet {
		fmt.Printf("Controllers: %d\n", len(cat.Controllers))
		fmt.Printf("Endpoints:   %d\n", len(cat.Endpoints))
		fmt.Printf("Services:    %d\n", len(cat.Services))
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}
