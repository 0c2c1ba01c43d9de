package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-atlas/internal/correlate"
	"github.com/mvp-joe/code-atlas/internal/depgraph"
	"github.com/mvp-joe/code-atlas/internal/export"
	"github.com/mvp-joe/code-atlas/internal/extract"
)

var (
	correlateOut   string
	correlateQuiet bool
)

// CorrelationArtifact is the exported correlation payload.
type CorrelationArtifact struct {
	*correlate.Correlation
	Mermaid string `json:"mermaid,omitempty"`
}

// correlateCmd represents the correlate command
var correlateCmd = &cobra.Command{
	Use:   "correlate [path]",
	Short: "Correlate messaging usage across stacks",
	Long: `Correlate buckets files by broker-related imports: .NET messaging
clients, Node.js messaging clients, and Angular UI files, and renders
a cross-stack relationship diagram when any bucket is non-empty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCorrelate,
}

func init() {
	rootCmd.AddCommand(correlateCmd)
	correlateCmd.Flags().StringVarP(&correlateOut, "out", "o", "", "output file (default under the configured output dir)")
	correlateCmd.Flags().BoolVarP(&correlateQuiet, "quiet", "q", false, "disable non-error output")
}

func runCorrelate(cmd *cobra.Command, args []string) error {
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

	// Unresolved imports recorded by the dependency analysis feed the
	// keyword matching alongside raw file imports.
	analyzer := depgraph.NewAnalyzer(depgraph.WithCouplingThreshold(cfg.Analysis.CouplingThreshold))
	result := analyzer.Analyze(files, extract.DefaultExtractors())

	correlation := correlate.Build(files, result.DependencyMap.ExternalDependencies)
	artifact := CorrelationArtifact{Correlation: correlation, Mermaid: correlation.Mermaid()}

	out := correlateOut
	if out == "" {
		out = outputPath(root, cfg, "correlation.json")
	}
	if err := export.WriteJSON(out, artifact); err != nil {
		return err
	}

	if !correlateQuiet {
		fmt.Printf(".NET messaging files:    %d\n", len(correlation.CSharpMessaging))
		fmt.Printf("Node.js messaging files: %d\n", len(correlation.NodeMessaging))
		fmt.Printf("Angular UI files:        %d\n", len(correlation.AngularFiles))
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}
