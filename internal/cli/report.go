package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-atlas/internal/catalog"
	"github.com/mvp-joe/code-atlas/internal/correlate"
	"github.com/mvp-joe/code-atlas/internal/depgraph"
	"github.com/mvp-joe/code-atlas/internal/export"
	"github.com/mvp-joe/code-atlas/internal/extract"
)

var (
	reportOut   string
	reportQuiet bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [path]",
	Short: "Write a combined Markdown analysis report",
	Long: `Report runs the dependency analysis, the service catalog, and the
cross-stack correlation, and writes everything as one Markdown
document: dependency counts and hot spots, endpoint flows with
sequence diagrams, and the messaging correlation graph.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output file (default under the configured output dir)")
	reportCmd.Flags().BoolVarP(&reportQuiet, "quiet", "q", false, "disable progress bars and non-error output")
}

func runReport(cmd *cobra.Command, args []string) error {
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

	analyzer := depgraph.NewAnalyzer(depgraph.WithCouplingThreshold(cfg.Analysis.CouplingThreshold))
	result := analyzer.Analyze(files, extract.DefaultExtractors())
	cat := catalog.Build(files, analyzer)
	correlation := correlate.Build(files, result.DependencyMap.ExternalDependencies)

	report := renderFullReport(result, cat, correlation)

	out := reportOut
	if out == "" {
		out = outputPath(root, cfg, "analysis-report.md")
	}
	if err := export.WriteFile(out, []byte(report)); err != nil {
		return err
	}

	if !reportQuiet {
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}

// renderFullReport appends the service catalog and correlation sections
// to the dependency report.
func renderFullReport(result *depgraph.Result, cat *catalog.Catalog, correlation *correlate.Correlation) string {
	var b strings.Builder
	b.WriteString(export.Report(result))

	if len(cat.Endpoints) > 0 {
		b.WriteString("\n# Service Catalog\n\n")

		b.WriteString("## API Endpoints\n\n")
		b.WriteString("| Controller | Method | Verbs | Route |\n")
		b.WriteString("|------------|--------|-------|-------|\n")
		for _, ep := range cat.Endpoints {
			fmt.Fprintf(&b, "| %s | %s | %s | `%s` |\n",
				ep.Controller, ep.Method, strings.Join(ep.HTTPVerbs, ", "), ep.Route)
		}
		b.WriteString("\n")

		if cat.FlowGraph != "" {
			b.WriteString("## Controller Flow\n\n")
			b.WriteString(cat.FlowGraph)
			b.WriteString("\n\n")
		}

		for _, diagram := range cat.SequenceDiagrams {
			fmt.Fprintf(&b, "## %s.%s\n\n", diagram.Controller, diagram.Method)
			b.WriteString(diagram.Mermaid)
			b.WriteString("\n\n")
		}
	}

	if !correlation.Empty() {
		b.WriteString("\n# Cross-Stack Correlation\n\n")
		fmt.Fprintf(&b, "- .NET messaging files: %d\n", len(correlation.CSharpMessaging))
		fmt.Fprintf(&b, "- Node.js messaging files: %d\n", len(correlation.NodeMessaging))
		fmt.Fprintf(&b, "- Angular UI files: %d\n\n", len(correlation.AngularFiles))
		b.WriteString(correlation.Mermaid())
		b.WriteString("\n")
	}

	return b.String()
}
