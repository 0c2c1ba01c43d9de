package export

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/code-atlas/internal/depgraph"
)

const couplingTableLimit = 10

// Report renders the dependency analysis as a Markdown document:
// headline counts, cycle chains, orphans, the most coupled files, and
// a size-capped dependency graph.
func Report(result *depgraph.Result) string {
	var b strings.Builder
	b.WriteString("# Dependency Map Analysis\n\n")
	fmt.Fprintf(&b, "**Run:** %s (%s)\n\n", result.RunID, result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "**Total Files:** %d\n\n", result.FileCount)
	fmt.Fprintf(&b, "**Total Classes:** %d\n\n", result.ClassCount)
	fmt.Fprintf(&b, "**Internal Dependencies:** %d\n\n", result.DependencyCount)
	fmt.Fprintf(&b, "**External Dependencies:** %d\n\n", result.ExternalDependencyCount)

	if len(result.CircularDependencies) > 0 {
		b.WriteString("## Circular Dependencies\n\n")
		for _, cycle := range result.CircularDependencies {
			b.WriteString("- " + strings.Join(cycle, " → ") + "\n")
		}
		b.WriteString("\n")
	}

	if len(result.OrphanedFiles) > 0 {
		b.WriteString("## Orphaned Files\n\n")
		b.WriteString("Files with no dependencies:\n\n")
		for _, file := range result.OrphanedFiles {
			b.WriteString("- `" + file + "`\n")
		}
		b.WriteString("\n")
	}

	if len(result.HighlyCoupledFiles) > 0 {
		b.WriteString("## Highly Coupled Files\n\n")
		b.WriteString("| File | Dependencies | Dependents | Total Coupling |\n")
		b.WriteString("|------|--------------|------------|----------------|\n")
		records := result.HighlyCoupledFiles
		if len(records) > couplingTableLimit {
			records = records[:couplingTableLimit]
		}
		for _, rec := range records {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d |\n", rec.File, rec.Dependencies, rec.Dependents, rec.Total)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Dependency Graph\n\n")
	b.WriteString("```mermaid\n")
	b.WriteString(mermaidGraph(result, reportMaxSources, reportMaxTargets))
	b.WriteString("```\n")

	return b.String()
}

// Render produces the artifact bytes for one format.
func Render(result *depgraph.Result, format Format) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(DOT(result)), nil
	case FormatMermaid:
		return []byte(MermaidGraph(result)), nil
	case FormatMarkdown:
		return []byte(Report(result)), nil
	case FormatJSON:
		return renderJSON(result)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Write renders and atomically writes one artifact.
func Write(result *depgraph.Result, format Format, path string) error {
	data, err := Render(result, format)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}
